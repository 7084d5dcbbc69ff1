package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/activity"
	"github.com/cleared-dev/moneytrack/internal/config"
	"github.com/cleared-dev/moneytrack/internal/gitops"
	"github.com/cleared-dev/moneytrack/internal/id"
)

func gitAuthor(cfg *config.Config) gitops.Author {
	return gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
}

func newSnapshotCommand() *cobra.Command {
	var (
		message string
		list    int
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Commit the project directory to git",
		Long: "Commit the project directory to git. Requires a project created " +
			"with \"moneytrack init --git\". With --list, show recent snapshots instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ context.Context, app *session) error {
				out := cmd.OutOrStdout()
				if !gitops.IsRepo(app.dir) {
					return fmt.Errorf("%s is not tracked in git (run \"moneytrack init --git --force\")", app.dir)
				}

				if list > 0 {
					snapshots, err := gitops.Log(app.dir, list)
					if err != nil {
						return err
					}
					rows := make([][]string, 0, len(snapshots))
					for _, s := range snapshots {
						rows = append(rows, []string{s.Hash, s.Date, s.Message})
					}
					printTable(out, []string{"Commit", "Date", "Message"}, rows)
					return nil
				}

				if message == "" {
					message = "snapshot: " + app.store.Now().Format(time.DateTime)
				}
				hash, err := gitops.Commit(app.dir, message, gitAuthor(app.cfg))
				if errors.Is(err, gitops.ErrNothingToCommit) {
					fmt.Fprintln(out, "Nothing changed since the last snapshot.")
					return nil
				}
				if err != nil {
					return err
				}
				app.auditCommit(cmd, "", message, hash)
				fmt.Fprintf(out, "Snapshot %s\n", hash)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().IntVar(&list, "list", 0, "show the newest n snapshots")

	return cmd
}

func newLogCommand() *cobra.Command {
	var (
		filter  activity.Filter
		since   string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show changes made from the command line",
		Long: `Show the project's activity log, oldest first.

--action accepts a full action ("expense add") or a command group
("expense"). --kind filters by the kind of entity touched: account,
expense, income, exchange, budget, alert or record; entries without a
ledger entity fall back to their command group ("rates", "snapshot").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if since != "" {
				day, err := id.ParseDay(since)
				if err != nil {
					return fmt.Errorf("invalid --since %q: %w", since, err)
				}
				filter.Since = day
			}
			return withApp(cmd, func(_ context.Context, app *session) error {
				out := cmd.OutOrStdout()
				log := activity.Open(app.dir)
				if summary {
					limit := filter.Limit
					filter.Limit = 0
					entries, err := log.Query(filter)
					if err != nil {
						return err
					}
					counts := activity.CountByAction(entries)
					if limit > 0 && len(counts) > limit {
						counts = counts[:limit]
					}
					rows := make([][]string, 0, len(counts))
					for _, c := range counts {
						rows = append(rows, []string{c.Action, strconv.Itoa(c.Count), c.Last.Format(time.DateTime)})
					}
					printTable(out, []string{"Action", "Count", "Last"}, rows)
					return nil
				}

				entries, err := log.Query(filter)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.Time.Format(time.DateTime),
						e.Action,
						e.EntityID,
						e.Details,
						e.Commit,
					})
				}
				printTable(out, []string{"Time", "Action", "ID", "Details", "Commit"}, rows)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&filter.Limit, "limit", "n", 20, "number of entries to show (0 for all)")
	cmd.Flags().StringVar(&filter.Action, "action", "", "only this action or command group")
	cmd.Flags().StringVar(&filter.Kind, "kind", "", "only entries touching this kind of entity")
	cmd.Flags().StringVar(&filter.EntityID, "entity", "", "only entries for this entity ID")
	cmd.Flags().StringVar(&since, "since", "", "only entries on or after this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&filter.Snapshots, "snapshots", false, "only snapshot commits")
	cmd.Flags().BoolVar(&summary, "summary", false, "count entries per action instead of listing them")

	return cmd
}
