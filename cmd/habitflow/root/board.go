package root

import (
	"context"

	"github.com/spf13/cobra"

	"habitflow/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive day board",
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
			return tui.RunBoard(ctx, svc, u.ID, cmd.OutOrStdout())
		},
	}

	return cmd
}
