package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitflow/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's tasks",
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
			stats, err := svc.Stats(ctx, u.ID)
			if err != nil {
				return err
			}
			done, err := svc.CompletedToday(ctx, u.ID, stats.Date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Tasks — "+string(stats.Date)))
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No active tasks. Add one with `habitflow add`."))
				return nil
			}
			for i, t := range tasks {
				mark := "☐"
				if done[t.ID] {
					mark = ui.IconDone
				}
				fmt.Fprintf(out, "%2d. %s %s %s  %s %s\n",
					i+1, mark, ui.CategoryIcon(t.Category), t.Title,
					ui.PriorityText(t.Priority),
					ui.Muted.Render(fmt.Sprintf("(%d %s)", t.CoinValue, ui.IconCoin)))
			}
			fmt.Fprintf(out, "\n%s\n", ui.Muted.Render(fmt.Sprintf("%d/%d daily tasks done", stats.CompletedToday, stats.TodayTasks)))
			return nil
		},
	}

	return cmd
}
