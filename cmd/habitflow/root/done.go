package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"habitflow/internal/engine"
	"habitflow/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "done <n>",
		Short: "Complete a task (by its `list` number)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task number is required")
			}
			if n, err := strconv.Atoi(args[0]); err != nil || n < 1 {
				return errors.New("task number must be a positive integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := svc.GetOrCreateLocal(ctx)
			if err != nil {
				return err
			}
			tasks, err := svc.ListActiveTasks(ctx, u.ID)
			if err != nil {
				return err
			}
			n, _ := strconv.Atoi(args[0])
			if n > len(tasks) {
				return fmt.Errorf("no task %d; see `habitflow list`", n)
			}

			date := engine.Date("")
			if asOf != "" {
				date, err = engine.ParseDate(asOf)
				if err != nil {
					return err
				}
			}

			res, err := svc.CompleteTask(ctx, u.ID, tasks[n-1].ID, date)
			if errors.Is(err, engine.ErrAlreadyCompleted) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already done for that day."))
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s  +%d %s", ui.IconDone, tasks[n-1].Title, res.CoinsEarned, ui.IconCoin)
			if res.StreakBonus > 0 {
				fmt.Fprintf(out, "  %s", ui.Gold.Render(fmt.Sprintf("+%d streak", res.StreakBonus)))
			}
			if res.CompletionBonus > 0 {
				fmt.Fprintf(out, "  %s", ui.Gold.Render(fmt.Sprintf("+%d all done", res.CompletionBonus)))
			}
			fmt.Fprintf(out, "\n%s %d day streak\n", ui.IconFire, res.NewStreak)
			if res.LevelUp {
				fmt.Fprintf(out, "%s %s → level %d\n", ui.IconBolt, ui.BadgeLevelUp, res.NewLevel)
			}
			for _, def := range res.UnlockedAchievements {
				fmt.Fprintf(out, "%s %s unlocked (+%d %s)\n", def.Icon, def.Name, def.CoinReward, ui.IconCoin)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "date", "", "Backfill date (YYYY-MM-DD, default today)")

	return cmd
}
