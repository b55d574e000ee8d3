package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain/entity"
)

// Store es un almacén en memoria compartido por los adaptadores de este
// paquete. Lo usan los tests de los motores y sirve como referencia ejecutable
// de los contratos que las implementaciones PostgreSQL deben cumplir.
type Store struct {
	mu sync.RWMutex

	products   map[string]*entity.Product
	categories map[string]*entity.Category
	providers  map[string]*entity.Provider
	sales      []*entity.Sale
	orders     []*entity.Order
	ledger     []*entity.InventoryTransaction
	// predicciones por clave "productID|YYYY-MM-DD": la unicidad del par es el
	// único mecanismo de control de concurrencia, igual que en PostgreSQL
	predictions map[string]entity.Prediction
}

// NewStore construye el almacén vacío.
func NewStore() *Store {
	return &Store{
		products:    make(map[string]*entity.Product),
		categories:  make(map[string]*entity.Category),
		providers:   make(map[string]*entity.Provider),
		predictions: make(map[string]entity.Prediction),
	}
}

// Products devuelve el adaptador de productos sobre este almacén.
func (s *Store) Products() *ProductRepo { return &ProductRepo{store: s} }

// Categories devuelve el adaptador de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{store: s} }

// Providers devuelve el adaptador de proveedores.
func (s *Store) Providers() *ProviderRepo { return &ProviderRepo{store: s} }

// Sales devuelve el adaptador de ventas.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{store: s} }

// Orders devuelve el adaptador de pedidos.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{store: s} }

// Ledger devuelve el adaptador del libro de inventario.
func (s *Store) Ledger() *LedgerRepo { return &LedgerRepo{store: s} }

// Predictions devuelve el adaptador de predicciones.
func (s *Store) Predictions() *PredictionRepo { return &PredictionRepo{store: s} }

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// inRange verifica start <= t <= end.
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
