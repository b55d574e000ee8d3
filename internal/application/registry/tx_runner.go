package registry

import (
	"context"

	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

// Repos son los repositorios disponibles dentro de una transacción.
type Repos struct {
	Products repository.ProductRepository
	Sales    repository.SaleRepository
	Orders   repository.OrderRepository
	Ledger   repository.LedgerRepository
}

// TxRunner ejecuta fn dentro de una transacción: todos los repositorios que
// recibe fn escriben sobre la misma transacción, y un error de fn revierte
// todo. El documento y sus transacciones de inventario se confirman juntos o
// no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
