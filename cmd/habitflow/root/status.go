package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitflow/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progression stats",
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
			stats, err := svc.Stats(ctx, u.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Progress"))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d (%.0f%% to next, at %d XP)", stats.Level, stats.LevelProgress, stats.NextLevelAt)))
			fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%d %s (%d today)", stats.Coins, ui.IconCoin, stats.CoinsToday)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days (best %d)", ui.IconFire, stats.CurrentStreak, stats.LongestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d/%d daily tasks (%.0f%%)", stats.CompletedToday, stats.TodayTasks, stats.DailyProgress)))
			return nil
		},
	}

	return cmd
}
