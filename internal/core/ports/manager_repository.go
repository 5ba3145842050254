package ports

import (
	"context"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

// ManagerRepository defines persistence operations for managers.
type ManagerRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Manager, error)
	FindByID(ctx context.Context, id string) (*domain.Manager, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, m *domain.Manager) (*domain.Manager, error)
}
