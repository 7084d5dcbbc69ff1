package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/cleared-dev/moneytrack/internal/activity"
	"github.com/cleared-dev/moneytrack/internal/config"
	"github.com/cleared-dev/moneytrack/internal/currency"
	"github.com/cleared-dev/moneytrack/internal/kv"
	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// session is the opened project a subcommand works against.
type session struct {
	dir   string
	cfg   *config.Config
	sub   *kv.Substrate
	store *ledger.Store
}

func configPath(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		return defaultConfigFile
	}
	return path
}

// openApp loads the config named by --config, sets up logging and opens
// the configured storage. Relative storage paths resolve against the
// directory holding the config file.
func openApp(cmd *cobra.Command) (*session, error) {
	path, err := filepath.Abs(configPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w (run \"moneytrack init\" first)", err)
	}
	if err := setupLogging(cfg.Log); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if cfg.Storage.Path != "" && !filepath.IsAbs(cfg.Storage.Path) {
		cfg.Storage.Path = filepath.Join(dir, cfg.Storage.Path)
	}

	fallback, err := currency.ParseRateFallback(cfg.Currency.RateFallback)
	if err != nil {
		return nil, err
	}
	sub, err := kv.OpenSubstrate(cmd.Context(), cfg.Storage)
	if err != nil {
		return nil, err
	}

	return &session{
		dir:   dir,
		cfg:   cfg,
		sub:   sub,
		store: ledger.New(sub, ledger.WithRateFallback(fallback)),
	}, nil
}

func (a *session) reference() model.Currency {
	if a.cfg.Currency.Reference == "" {
		return model.CurrencyTHB
	}
	return model.Currency(a.cfg.Currency.Reference)
}

// audit appends cmd to the project's activity log. Failures are logged
// and never fail the command.
func (a *session) audit(cmd *cobra.Command, entityID, details string) {
	a.auditCommit(cmd, entityID, details, "")
}

func (a *session) auditCommit(cmd *cobra.Command, entityID, details, hash string) {
	e := activity.Entry{
		Time:     a.store.Now(),
		Action:   strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" "),
		EntityID: entityID,
		Details:  details,
		Commit:   hash,
	}
	if err := activity.Open(a.dir).Append(e); err != nil {
		logx.WithContext(cmd.Context()).Errorw("writing activity log", logx.Field("error", err.Error()))
	}
}

func (a *session) close() {
	if err := a.sub.Close(); err != nil {
		logx.Errorw("closing storage", logx.Field("error", err.Error()))
	}
}

// withApp opens the project, runs fn and closes it again.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *session) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(cmd.Context(), a)
}

func setupLogging(c config.LogConfig) error {
	conf := logx.LogConf{
		ServiceName: "moneytrack",
		Mode:        c.Mode,
		Encoding:    c.Encoding,
		Level:       c.Level,
		Path:        c.Path,
	}
	if conf.Mode == "file" && conf.Path == "" {
		conf.Path = "logs"
	}
	if err := logx.SetUp(conf); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	logx.DisableStat()
	return nil
}
