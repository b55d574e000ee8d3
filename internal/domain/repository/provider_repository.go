package repository

import (
	"context"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
)

// ProviderRepository define el puerto de persistencia para Provider.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id string) (*entity.Provider, error)
	List(ctx context.Context) ([]*entity.Provider, error)
}
