package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitflow/internal/engine"
	"habitflow/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Show achievement progress",
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
			progress, err := svc.Achievements(ctx, u.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			for _, p := range progress {
				def, ok := engine.CatalogDef(p.Type)
				if !ok {
					continue
				}
				if p.Unlocked {
					fmt.Fprintf(out, "%s %s — %s %s\n", def.Icon, ui.Gold.Render(def.Name), def.Description, ui.Good.Render("unlocked"))
					continue
				}
				fmt.Fprintf(out, "%s %s — %s %s\n", ui.IconLock, def.Name, def.Description,
					ui.Muted.Render(fmt.Sprintf("(%d/%d)", p.Progress, p.Target)))
			}
			return nil
		},
	}

	return cmd
}
