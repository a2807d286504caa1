package app

import (
	"strings"

	"github.com/blufunnel/games-portal/internal/backup"
	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/config"
	"github.com/blufunnel/games-portal/internal/handlers"
	"github.com/blufunnel/games-portal/internal/interfaces"
	"github.com/blufunnel/games-portal/internal/seed"
	"github.com/blufunnel/games-portal/internal/storage"
)

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	// HTTP handlers
	PageHandler       *handlers.PageHandler
	HealthHandler     *handlers.HealthHandler
	VersionHandler    *handlers.VersionHandler
	DashboardHandler  *handlers.DashboardHandler
	PlayersHandler    *handlers.PlayersHandler
	CompaniesHandler  *handlers.CompaniesHandler
	PortfoliosHandler *handlers.PortfoliosHandler
	AdminHandler      *handlers.AdminHandler

	backupRunner *backup.Runner
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	// Validate environment setting
	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE — sample data seeding enabled, do not use in production")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	store, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, err
	}
	a.Storage = store

	a.initHandlers()

	if cfg.IsDevMode() {
		go seed.DevData(store, logger)
	}

	if cfg.Backup.Enabled {
		runner, err := backup.NewRunner(logger, cfg.Storage.DataDir, &cfg.Backup)
		if err != nil {
			return nil, err
		}
		runner.Start()
		a.backupRunner = runner
	}

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	devMode := a.Config.IsDevMode()

	a.PageHandler = handlers.NewPageHandler(a.Logger, devMode)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.DashboardHandler = handlers.NewDashboardHandler(a.Logger, devMode, a.Storage)
	a.PlayersHandler = handlers.NewPlayersHandler(a.Logger, devMode, a.Storage.Players())
	a.CompaniesHandler = handlers.NewCompaniesHandler(a.Logger, devMode, a.Storage.Companies())
	a.PortfoliosHandler = handlers.NewPortfoliosHandler(a.Logger, devMode, a.Storage)
	a.AdminHandler = handlers.NewAdminHandler(a.Logger, devMode, a.Storage)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.backupRunner != nil {
		a.backupRunner.Stop()
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
