package memory

import (
	"context"

	"github.com/jhoicas/Analitica-api/internal/application/registry"
)

var _ registry.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback directamente sobre el store. No hay rollback:
// un fn que falla a mitad de camino deja las escrituras previas aplicadas.
// Suficiente para tests; la atomicidad real la da el runner de PostgreSQL.
type TxRunner struct {
	store *Store
}

func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos registry.Repos) error) error {
	return fn(ctx, registry.Repos{
		Products: r.store.Products(),
		Sales:    r.store.Sales(),
		Orders:   r.store.Orders(),
		Ledger:   r.store.Ledger(),
	})
}
