package csvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/config"
	"github.com/blufunnel/games-portal/internal/interfaces"
	"github.com/blufunnel/games-portal/internal/models"
)

// Table file names inside the data directory.
const (
	PlayersFile    = "players.csv"
	CompaniesFile  = "companies.csv"
	PortfoliosFile = "model_portfolios.csv"
)

// Manager implements the StorageManager interface over CSV table files.
type Manager struct {
	dataDir    string
	players    *PlayerStore
	companies  *CompanyStore
	portfolios *PortfolioStore
	logger     *common.Logger
}

// NewManager creates a CSV storage manager. The data directory is created if
// absent and each table file is created with a header row on first run.
func NewManager(logger *common.Logger, cfg *config.StorageConfig) (*Manager, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	playersPath := filepath.Join(cfg.DataDir, PlayersFile)
	companiesPath := filepath.Join(cfg.DataDir, CompaniesFile)
	portfoliosPath := filepath.Join(cfg.DataDir, PortfoliosFile)

	if err := ensureTable[models.Player](playersPath); err != nil {
		return nil, err
	}
	if err := ensureTable[models.Company](companiesPath); err != nil {
		return nil, err
	}
	if err := ensureTable[models.PortfolioEntry](portfoliosPath); err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second

	manager := &Manager{
		dataDir:    cfg.DataDir,
		players:    NewPlayerStore(logger, playersPath, ttl),
		companies:  NewCompanyStore(logger, companiesPath, ttl),
		portfolios: NewPortfolioStore(logger, portfoliosPath, ttl),
		logger:     logger,
	}

	logger.Debug().Str("data_dir", cfg.DataDir).Msg("CSV storage manager initialized")

	return manager, nil
}

// Players returns the player storage interface.
func (m *Manager) Players() interfaces.PlayerStorage {
	return m.players
}

// Companies returns the company storage interface.
func (m *Manager) Companies() interfaces.CompanyStorage {
	return m.companies
}

// Portfolios returns the portfolio storage interface.
func (m *Manager) Portfolios() interfaces.PortfolioStorage {
	return m.portfolios
}

// DataDir returns the directory holding the table files.
func (m *Manager) DataDir() string {
	return m.dataDir
}

// Close releases storage resources. CSV tables hold no open handles between
// operations, so there is nothing to release.
func (m *Manager) Close() error {
	return nil
}
