package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/cmd/cli/commands"
	"github.com/mkhera/voluntree-cli/internal/config"
	"github.com/mkhera/voluntree-cli/pkg/clients/apiclient"
	"github.com/mkhera/voluntree-cli/pkg/clients/opportunityclient"
	"github.com/mkhera/voluntree-cli/pkg/filecache"
	"github.com/mkhera/voluntree-cli/pkg/postgres"
	"github.com/mkhera/voluntree-cli/pkg/session"
	"github.com/mkhera/voluntree-cli/pkg/store"
	"github.com/mkhera/voluntree-cli/pkg/utils/logging"
)

var (
	env     string
	verbose bool

	// app is allocated up front so commands can capture the pointer; its
	// fields are populated by initApp before any RunE executes.
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "voluntree",
		Short: "Voluntree host CLI - Manage your opportunity listings",
		Long:  `A CLI tool for hosts on the Voluntree volunteering marketplace: create, edit, and manage opportunity listings.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.LoginCmd(app))
	rootCmd.AddCommand(commands.LogoutCmd(app))
	rootCmd.AddCommand(commands.WhoamiCmd(app))
	rootCmd.AddCommand(commands.ListOpportunitiesCmd(app))
	rootCmd.AddCommand(commands.ViewOpportunityCmd(app))
	rootCmd.AddCommand(commands.CreateOpportunityCmd(app))
	rootCmd.AddCommand(commands.EditOpportunityCmd(app))
	rootCmd.AddCommand(commands.ToggleStatusCmd(app))
	rootCmd.AddCommand(commands.DeleteOpportunityCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, session store, API clients, and the
// opportunity store
func initApp() error {
	ctx := context.Background()

	logger, err := logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	logger.Info("Loading configuration")
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully")

	sessions := session.NewStore(cfg.SessionPath)

	logger.Info("Initializing API client", zap.String("base_url", cfg.APIBaseURL))
	api := apiclient.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, cfg.RequestsPerSecond, sessions, logger)
	client := opportunityclient.NewClient(api)

	cache, err := newCacheBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}

	opportunities := store.New(client, cache, logger)
	opportunities.Hydrate(ctx)

	*app = commands.AppContext{
		Cfg:           cfg,
		Sessions:      sessions,
		Client:        client,
		Opportunities: opportunities,
		Logger:        logger,
		Ctx:           ctx,
	}

	return nil
}

// newCacheBackend builds the configured opportunity cache backend.
func newCacheBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.CacheBackend, error) {
	switch cfg.CacheBackend {
	case "postgres":
		logger.Info("Connecting to PostgreSQL cache")
		db, err := postgres.NewDB(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to cache database: %w", err)
		}
		if err := db.RunMigrations(ctx); err != nil {
			return nil, fmt.Errorf("failed to run cache migrations: %w", err)
		}
		return db, nil
	default:
		logger.Debug("Using file cache", zap.String("path", cfg.CachePath))
		return filecache.New(cfg.CachePath), nil
	}
}
