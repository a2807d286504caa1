package csvstore

import (
	"context"
	"sync"
	"time"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/models"
)

// PortfolioStore persists model_portfolios.csv.
type PortfolioStore struct {
	path   string
	mu     sync.Mutex
	cache  *snapshotCache[models.PortfolioEntry]
	logger *common.Logger
}

// NewPortfolioStore creates a portfolio store over the given table file.
func NewPortfolioStore(logger *common.Logger, path string, cacheTTL time.Duration) *PortfolioStore {
	return &PortfolioStore{
		path:   path,
		cache:  newSnapshotCache[models.PortfolioEntry](cacheTTL),
		logger: logger,
	}
}

// List returns all portfolio rows, treating unreadable tables as empty.
func (s *PortfolioStore) List(_ context.Context) ([]models.PortfolioEntry, error) {
	if rows, ok := s.cache.Get(); ok {
		return rows, nil
	}

	rows, err := loadTable[models.PortfolioEntry](s.path)
	if err != nil {
		s.logger.Warn().Str("table", s.path).Str("error", err.Error()).Msg("unreadable portfolio table, treating as empty")
		return []models.PortfolioEntry{}, nil
	}

	s.cache.Set(rows)
	return rows, nil
}

// Add appends a portfolio link row. Rows carry no ID of their own; the
// caller supplies the denormalized player and company fields.
func (s *PortfolioStore) Add(_ context.Context, e models.PortfolioEntry) (models.PortfolioEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadTable[models.PortfolioEntry](s.path)
	if err != nil {
		s.logger.Warn().Str("table", s.path).Str("error", err.Error()).Msg("unreadable portfolio table, starting fresh")
		rows = nil
	}

	rows = append(rows, e)
	if err := saveTable(s.path, rows); err != nil {
		return models.PortfolioEntry{}, err
	}

	s.cache.Invalidate()
	s.logger.Info().
		Str("player", e.PlayerName).
		Str("company", e.CompanyName).
		Msg("portfolio entry added")

	return e, nil
}

// Count returns the number of portfolio rows.
func (s *PortfolioStore) Count(ctx context.Context) (int, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
