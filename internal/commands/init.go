package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/config"
	"github.com/cleared-dev/moneytrack/internal/currency"
	"github.com/cleared-dev/moneytrack/internal/gitops"
	"github.com/cleared-dev/moneytrack/internal/model"
)

type initOptions struct {
	driver    string
	dsn       string
	redisAddr string
	reference string
	fallback  string
	force     bool
	git       bool
}

func newInitCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new moneytrack project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(absDir, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized moneytrack project at %s (%s storage)\n", absDir, opts.driver)
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initial snapshot %s\n", hash)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.driver, "driver", "file", "storage driver: file, sqlite, memory, redis or postgres")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "postgres connection string")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "redis host:port")
	cmd.Flags().StringVar(&opts.reference, "currency", string(model.CurrencyTHB), "reference currency for totals")
	cmd.Flags().StringVar(&opts.fallback, "rate-fallback", string(currency.FallbackOne), "missing rate policy: one or none")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing moneytrack.yaml")
	cmd.Flags().BoolVar(&opts.git, "git", false, "track the project in git for snapshots")

	return cmd
}

// runInit lays out the project and returns the initial snapshot hash when
// git tracking was requested.
func runInit(dir string, opts initOptions) (string, error) {
	cfgPath := filepath.Join(dir, defaultConfigFile)
	if _, err := os.Stat(cfgPath); err == nil && !opts.force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	if !model.Currency(opts.reference).Valid() {
		return "", fmt.Errorf("unsupported currency %q", opts.reference)
	}
	if _, err := currency.ParseRateFallback(opts.fallback); err != nil {
		return "", err
	}

	cfg := config.Default("data")
	cfg.Currency.Reference = opts.reference
	cfg.Currency.RateFallback = opts.fallback
	switch opts.driver {
	case "file":
	case "sqlite":
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.Path = filepath.Join("data", "moneytrack.db")
	case "memory":
		cfg.Storage = config.StorageConfig{Driver: "memory", ReadPolicy: cfg.Storage.ReadPolicy}
	case "redis":
		if opts.redisAddr == "" {
			return "", fmt.Errorf("--redis-addr is required for the redis driver")
		}
		cfg.Storage = config.StorageConfig{Driver: "redis", RedisAddr: opts.redisAddr, ReadPolicy: cfg.Storage.ReadPolicy}
	case "postgres":
		if opts.dsn == "" {
			return "", fmt.Errorf("--dsn is required for the postgres driver")
		}
		cfg.Storage = config.StorageConfig{Driver: "postgres", DSN: opts.dsn, ReadPolicy: cfg.Storage.ReadPolicy}
	default:
		return "", fmt.Errorf("unknown storage driver %q", opts.driver)
	}

	// Create directory structure.
	dirs := []string{
		"data",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return "", err
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !opts.git {
		return "", nil
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("import/processed/\nlogs/\n*.corrupt.json\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}
	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return "", err
		}
	}
	hash, err := gitops.Commit(dir, "init: moneytrack project", gitAuthor(cfg))
	if err != nil {
		return "", fmt.Errorf("initial snapshot: %w", err)
	}
	return hash, nil
}
