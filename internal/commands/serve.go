package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"

	"github.com/cleared-dev/moneytrack/internal/notify"
	"github.com/cleared-dev/moneytrack/internal/server"
)

func newServeCommand() *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: "Serve the JSON API. When Telegram is configured, weekly check-in " +
			"reminders are sent while the server runs.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				if addr == "" {
					addr = app.cfg.Server.Addr
				}

				if app.cfg.Telegram.Enabled() {
					tg, err := notify.NewTelegram(app.cfg.Telegram.Token, app.cfg.Telegram.ChatID)
					if err != nil {
						return err
					}
					watcher := notify.NewWatcher(app.store, tg, interval)
					threading.GoSafe(func() { watcher.Run(ctx) })
				} else {
					logx.Info("telegram not configured, weekly reminders disabled")
				}

				router := server.NewRouter(app.store, server.Options{
					AllowedOrigins: app.cfg.Server.AllowedOrigins,
					Reference:      app.reference(),
				})
				return server.Run(ctx, addr, router)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().DurationVar(&interval, "reminder-interval", time.Hour, "how often to check for a due check-in")

	return cmd
}
