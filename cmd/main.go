package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/creativeminds/analytics/internal/adapters/repository"
	service "github.com/creativeminds/analytics/internal/app"
	"github.com/creativeminds/analytics/internal/config"
	"github.com/creativeminds/analytics/internal/domain/analysis"
	"github.com/creativeminds/analytics/pkg/logger"
)

// Sentinel kinds for command failures.
var (
	ErrBootstrap = errors.New("bootstrap failed")
	ErrServe     = errors.New("serve failed")
	ErrUsage     = errors.New("invalid usage")
)

// consoleAnnotation marks commands that log to stdout. Everything else logs
// to stderr so that stdout carries only the command output.
const consoleAnnotation = "log-to-stdout"

func main() {
	if err := newRootCommand(&cli{openStore: openSQLStore}).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// cli carries the state every subcommand shares once bootstrap has run.
type cli struct {
	cfg *config.Config
	log logger.Logger

	// openStore is swapped in tests to avoid a real database.
	openStore func(ctx context.Context, cfg *config.Config) (repository.Store, error)
}

func newRootCommand(c *cli) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "analytics",
		Short:        "Creative Minds project management analytics",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.ErrOrStderr()
			if cmd.Annotations[consoleAnnotation] != "" {
				out = cmd.OutOrStdout()
			}
			return c.bootstrap(cmd.Context(), configPath, out)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overrides CM_CONFIG)")

	root.AddCommand(newServeCommand(c), newReportCommand(c), newProbeCommand(c))
	return root
}

// bootstrap loads configuration and initializes logging.
func (c *cli) bootstrap(ctx context.Context, configPath string, out io.Writer) error {
	if configPath != "" {
		if err := os.Setenv("CM_CONFIG", configPath); err != nil {
			return fmt.Errorf("%w: %w", ErrBootstrap, err)
		}
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrap, err)
	}
	if err := logger.Init(logger.WithOutput(out), logger.WithFile(cfg.LogFile)); err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrap, err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	c.cfg = cfg
	c.log = logger.Named("cmd")
	c.log.Debug(ctx, "configuration loaded", logger.String("config", cfg.String()))
	return nil
}

func openSQLStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	store, err := repository.Open(ctx, cfg.DBDriver, cfg.DSN(),
		repository.WithQueryTimeout(cfg.QueryTimeout()),
		repository.WithMaxOpenConns(cfg.MaxOpenConns),
	)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// newService builds the report service over store using the configured engine.
func (c *cli) newService(store repository.Store) *service.Service {
	engine := analysis.NewEngine(analysis.WithRecommendationLimit(c.cfg.RecommendationLimit))
	return service.New(
		service.WithStore(store),
		service.WithEngine(engine),
		service.WithLogger(logger.Named("service")),
	)
}
