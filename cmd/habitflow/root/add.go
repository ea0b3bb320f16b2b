package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"habitflow/internal/engine"
	"habitflow/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var priority string
	var recurrence string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			cat, err := engine.ParseCategory(category)
			if err != nil {
				return err
			}
			prio, err := engine.ParsePriority(priority)
			if err != nil {
				return err
			}
			rec, err := engine.ParseRecurrence(recurrence)
			if err != nil {
				return err
			}

			u, err := svc.GetOrCreateLocal(ctx)
			if err != nil {
				return err
			}
			t, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				UserID:     u.ID,
				Title:      args[0],
				Category:   cat,
				Priority:   prio,
				Recurrence: rec,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s %s\n",
				ui.Good.Render("✔"), ui.CategoryIcon(t.Category), t.Title,
				ui.Muted.Render(fmt.Sprintf("(%d %s per day)", t.CoinValue, ui.IconCoin)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "personal", "Category (sport|health|work|learning|rest|personal)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low|medium|high)")
	cmd.Flags().StringVarP(&recurrence, "recurrence", "r", "daily", "Recurrence (none|daily|weekly|custom)")

	return cmd
}
