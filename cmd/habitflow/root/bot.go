package root

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"habitflow/internal/bot"
	"habitflow/internal/config"
)

func newBotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.TelegramToken == "" {
				return errors.New("TELEGRAM_BOT_TOKEN is required")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			b, err := bot.New(cfg.TelegramToken, svc)
			if err != nil {
				return err
			}
			log.Println("bot started, press Ctrl+C to stop")
			b.Run(ctx)
			return nil
		},
	}

	return cmd
}
