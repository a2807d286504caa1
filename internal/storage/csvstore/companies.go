package csvstore

import (
	"context"
	"sync"
	"time"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/models"
)

// CompanyStore persists companies.csv.
type CompanyStore struct {
	path   string
	mu     sync.Mutex
	cache  *snapshotCache[models.Company]
	logger *common.Logger
}

// NewCompanyStore creates a company store over the given table file.
func NewCompanyStore(logger *common.Logger, path string, cacheTTL time.Duration) *CompanyStore {
	return &CompanyStore{
		path:   path,
		cache:  newSnapshotCache[models.Company](cacheTTL),
		logger: logger,
	}
}

// List returns all company rows, treating unreadable tables as empty.
func (s *CompanyStore) List(_ context.Context) ([]models.Company, error) {
	if rows, ok := s.cache.Get(); ok {
		return rows, nil
	}

	rows, err := loadTable[models.Company](s.path)
	if err != nil {
		s.logger.Warn().Str("table", s.path).Str("error", err.Error()).Msg("unreadable company table, treating as empty")
		return []models.Company{}, nil
	}

	s.cache.Set(rows)
	return rows, nil
}

// Add appends a company row, assigning the next ID (max+1, 1 when empty).
func (s *CompanyStore) Add(_ context.Context, c models.Company) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadTable[models.Company](s.path)
	if err != nil {
		s.logger.Warn().Str("table", s.path).Str("error", err.Error()).Msg("unreadable company table, starting fresh")
		rows = nil
	}

	nextID := 1
	for _, row := range rows {
		if row.ID >= nextID {
			nextID = row.ID + 1
		}
	}
	c.ID = nextID

	rows = append(rows, c)
	if err := saveTable(s.path, rows); err != nil {
		return models.Company{}, err
	}

	s.cache.Invalidate()
	s.logger.Info().Str("company", c.Name).Int("company_id", c.ID).Msg("company added")

	return c, nil
}

// FindByName returns the first company with the given name, or nil.
func (s *CompanyStore) FindByName(ctx context.Context, name string) (*models.Company, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Name == name {
			return &row, nil
		}
	}
	return nil, nil
}

// Count returns the number of company rows.
func (s *CompanyStore) Count(ctx context.Context) (int, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
