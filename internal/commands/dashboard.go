package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/report"
)

// renderOptions selects how a markdown report is printed.
type renderOptions struct {
	format string
	style  string
	width  int
}

func (o *renderOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "terminal", "terminal, markdown or html")
	cmd.Flags().StringVar(&o.style, "style", "auto", "terminal style: auto, dark, light or notty")
	cmd.Flags().IntVar(&o.width, "width", 80, "terminal word-wrap width")
}

func (o *renderOptions) render(w io.Writer, md string) error {
	var (
		out string
		err error
	)
	switch o.format {
	case "markdown", "md":
		out = md
	case "html":
		out, err = report.RenderHTML(md)
	case "terminal":
		out, err = report.RenderTerminal(md, o.style, o.width)
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func newDashboardCommand() *cobra.Command {
	var (
		opts   renderOptions
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show balances, budget progress and recent spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				d := report.BuildDashboard(ctx, app.store, app.reference())
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(d)
				}
				md, err := report.DashboardMarkdown(d)
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), md)
			})
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard as JSON")

	return cmd
}
