package interfaces

import (
	"context"

	"github.com/blufunnel/games-portal/internal/models"
)

// StorageManager provides access to domain-specific storage interfaces.
// Implementations can be swapped (CSV files now, a database later).
type StorageManager interface {
	Players() PlayerStorage
	Companies() CompanyStorage
	Portfolios() PortfolioStorage
	Close() error
}

// PlayerStorage persists player rows.
type PlayerStorage interface {
	List(ctx context.Context) ([]models.Player, error)
	Add(ctx context.Context, p models.Player) (models.Player, error)
	FindByName(ctx context.Context, name string) (*models.Player, error)
	Count(ctx context.Context) (int, error)
}

// CompanyStorage persists company rows.
type CompanyStorage interface {
	List(ctx context.Context) ([]models.Company, error)
	Add(ctx context.Context, c models.Company) (models.Company, error)
	FindByName(ctx context.Context, name string) (*models.Company, error)
	Count(ctx context.Context) (int, error)
}

// PortfolioStorage persists model portfolio link rows.
type PortfolioStorage interface {
	List(ctx context.Context) ([]models.PortfolioEntry, error)
	Add(ctx context.Context, e models.PortfolioEntry) (models.PortfolioEntry, error)
	Count(ctx context.Context) (int, error)
}
