package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Analitica-api/internal/domain"
	"github.com/jhoicas/Analitica-api/internal/domain/entity"
	"github.com/jhoicas/Analitica-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ProviderRepository = (*ProviderRepo)(nil)
)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	store *Store
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; ok {
		return fmt.Errorf("producto %s: %w", product.ID, domain.ErrDuplicate)
	}
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrProductNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.filtered(func(*entity.Product) bool { return true }), nil
}

func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.filtered(func(p *entity.Product) bool { return p.CategoryID == categoryID }), nil
}

func (r *ProductRepo) ListByProviderAndCategory(ctx context.Context, providerID, categoryID string) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.filtered(func(p *entity.Product) bool {
		return p.ProviderID == providerID && p.CategoryID == categoryID
	}), nil
}

func (r *ProductRepo) ListActiveSince(ctx context.Context, since time.Time) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	active := make(map[string]bool)
	for _, sale := range r.store.sales {
		if sale.Date.Before(since) {
			continue
		}
		for _, it := range sale.Items {
			active[it.ProductID] = true
		}
	}
	return r.filtered(func(p *entity.Product) bool { return active[p.ID] }), nil
}

// filtered selecciona y ordena por nombre para resultados deterministas
// (equivale al ORDER BY name de las consultas SQL). Llamar con lock tomado.
func (r *ProductRepo) filtered(keep func(*entity.Product) bool) []*entity.Product {
	var list []*entity.Product
	for _, p := range r.store.products {
		if keep(p) {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	store *Store
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *category
	r.store.categories[category.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("categoría %s: %w", id, domain.ErrCategoryNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Category
	for _, c := range r.store.categories {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ProviderRepo implementación en memoria de ProviderRepository.
type ProviderRepo struct {
	store *Store
}

func (r *ProviderRepo) Create(ctx context.Context, provider *entity.Provider) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *provider
	r.store.providers[provider.ID] = &cp
	return nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.providers[id]
	if !ok {
		return nil, fmt.Errorf("proveedor %s: %w", id, domain.ErrProviderNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *ProviderRepo) List(ctx context.Context) ([]*entity.Provider, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Provider
	for _, p := range r.store.providers {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
