package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/kv"
)

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that every stored collection decodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Storage: %s (read policy %s)\n", app.cfg.Storage.Driver, app.sub.Policy())
				if app.sub.Headless() {
					fmt.Fprintln(out, mutedStyle.Render("Headless storage: nothing is persisted."))
				}

				var bad int
				rows := make([][]string, 0, len(kv.AllKeys))
				for _, key := range kv.AllKeys {
					app.sub.ResetError()
					raw := kv.Read[json.RawMessage](ctx, app.sub, key, nil)
					status := "ok"
					switch err := app.sub.LastError(); {
					case err != nil:
						status = overStyle.Render(err.Error())
						bad++
					case raw == nil:
						status = mutedStyle.Render("empty")
					}
					rows = append(rows, []string{key, status})
				}
				printTable(out, []string{"Key", "Status"}, rows)

				if bad > 0 {
					return fmt.Errorf("%d collections failed to load", bad)
				}
				return nil
			})
		},
	}
}
