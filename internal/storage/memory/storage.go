package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/domain/repository"
)

// Storage keeps all data in process memory. It backs the development setup
// when no database is configured.
type Storage struct {
	mu           sync.RWMutex
	products     map[string]model.Product
	orders       map[string]model.Order
	orderItems   map[string][]model.OrderItem
	integrations map[string]model.Integration
}

func New() *Storage {
	return &Storage{
		products:     make(map[string]model.Product),
		orders:       make(map[string]model.Order),
		orderItems:   make(map[string][]model.OrderItem),
		integrations: make(map[string]model.Integration),
	}
}

func (s *Storage) Products() repository.ProductRepository         { return &productRepository{s} }
func (s *Storage) Orders() repository.OrderRepository             { return &orderRepository{s} }
func (s *Storage) Integrations() repository.IntegrationRepository { return &integrationRepository{s} }

func isCanonicalID(ref string) bool {
	_, err := uuid.Parse(ref)
	return err == nil
}

type productRepository struct {
	storage *Storage
}

func (r *productRepository) find(ref string) (model.Product, bool) {
	if p, ok := r.storage.products[ref]; ok {
		return p, true
	}
	if isCanonicalID(ref) {
		return model.Product{}, false
	}
	for _, p := range r.storage.products {
		if p.SKU == ref {
			return p, true
		}
	}
	return model.Product{}, false
}

func (r *productRepository) List(_ context.Context) ([]model.Product, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	result := make([]model.Product, 0, len(r.storage.products))
	for _, p := range r.storage.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *productRepository) Get(_ context.Context, ref string) (*model.Product, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	p, ok := r.find(ref)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (r *productRepository) Create(_ context.Context, product model.Product) (*model.Product, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	if product.SKU != "" {
		for _, p := range r.storage.products {
			if p.SKU == product.SKU {
				return nil, domainErrors.ErrAlreadyExists
			}
		}
	}

	now := time.Now()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.storage.products[product.ID] = product
	return &product, nil
}

func (r *productRepository) Update(_ context.Context, ref string, update model.ProductUpdate) (*model.Product, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	p, ok := r.find(ref)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}

	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Stock != nil {
		p.StockQuantity = *update.Stock
	}
	if update.Images != nil {
		p.Images = *update.Images
	}
	if update.IsBundle != nil {
		p.IsBundle = *update.IsBundle
	}
	if update.MinPrice != nil {
		p.MinPrice = update.MinPrice
	}
	p.UpdatedAt = time.Now()
	r.storage.products[p.ID] = p
	return &p, nil
}

func (r *productRepository) Delete(_ context.Context, ref string) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	p, ok := r.find(ref)
	if !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.storage.products, p.ID)
	return nil
}

func (r *productRepository) UpsertBySKU(_ context.Context, products []model.Product) (int, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	bySKU := make(map[string]string, len(r.storage.products))
	for id, p := range r.storage.products {
		if p.SKU != "" {
			bySKU[p.SKU] = id
		}
	}

	now := time.Now()
	count := 0
	for _, incoming := range products {
		if id, ok := bySKU[incoming.SKU]; ok {
			existing := r.storage.products[id]
			incoming.ID = existing.ID
			incoming.CreatedAt = existing.CreatedAt
		} else {
			incoming.ID = uuid.NewString()
			incoming.CreatedAt = now
			bySKU[incoming.SKU] = incoming.ID
		}
		incoming.UpdatedAt = now
		r.storage.products[incoming.ID] = incoming
		count++
	}
	return count, nil
}

func (r *productRepository) ResolveSKUs(_ context.Context, skus []string) (map[string]string, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	wanted := make(map[string]struct{}, len(skus))
	for _, sku := range skus {
		wanted[sku] = struct{}{}
	}

	resolved := make(map[string]string, len(skus))
	for id, p := range r.storage.products {
		if _, ok := wanted[p.SKU]; ok {
			resolved[p.SKU] = id
		}
	}
	return resolved, nil
}

func (r *productRepository) ReplaceImages(_ context.Context, id string, images []string) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	p, ok := r.storage.products[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.Images = images
	p.UpdatedAt = time.Now()
	r.storage.products[id] = p
	return nil
}

func (r *productRepository) Count(_ context.Context) (int64, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	return int64(len(r.storage.products)), nil
}

type orderRepository struct {
	storage *Storage
}

func (r *orderRepository) Create(_ context.Context, order model.Order, items []model.OrderItem) (*model.Order, []model.OrderItem, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	now := time.Now()
	order.ID = uuid.NewString()
	order.CreatedAt = now
	order.UpdatedAt = now

	saved := make([]model.OrderItem, len(items))
	for i, item := range items {
		item.ID = uuid.NewString()
		item.OrderID = order.ID
		saved[i] = item
	}

	r.storage.orders[order.ID] = order
	r.storage.orderItems[order.ID] = saved
	return &order, saved, nil
}

func (r *orderRepository) GetWithItems(_ context.Context, id string) (*model.Order, []model.OrderItem, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	order, ok := r.storage.orders[id]
	if !ok {
		return nil, nil, domainErrors.ErrNotFound
	}
	items := make([]model.OrderItem, len(r.storage.orderItems[id]))
	copy(items, r.storage.orderItems[id])
	return &order, items, nil
}

func (r *orderRepository) GetByPaymentIntent(_ context.Context, intentID string) (*model.Order, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	for _, order := range r.storage.orders {
		if order.PaymentIntentID != nil && *order.PaymentIntentID == intentID {
			o := order
			return &o, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *orderRepository) List(_ context.Context) ([]model.Order, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	result := make([]model.Order, 0, len(r.storage.orders))
	for _, order := range r.storage.orders {
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *orderRepository) MarkPaid(_ context.Context, orderID string) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	order, ok := r.storage.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.PaymentStatus = model.PaymentStatusPaid
	order.Status = model.OrderStatusProcessing
	order.UpdatedAt = time.Now()
	r.storage.orders[orderID] = order
	return nil
}

func (r *orderRepository) ListAwaitingPayment(_ context.Context, createdBefore time.Time, limit int) ([]model.Order, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	var result []model.Order
	for _, order := range r.storage.orders {
		if order.PaymentStatus != model.PaymentStatusPending || order.PaymentIntentID == nil {
			continue
		}
		if !order.CreatedAt.Before(createdBefore) {
			continue
		}
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type integrationRepository struct {
	storage *Storage
}

func (r *integrationRepository) Get(_ context.Context, service string) (*model.Integration, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	integration, ok := r.storage.integrations[service]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cfg := make(json.RawMessage, len(integration.Config))
	copy(cfg, integration.Config)
	integration.Config = cfg
	return &integration, nil
}

func (r *integrationRepository) Upsert(_ context.Context, integration model.Integration) (*model.Integration, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	integration.UpdatedAt = time.Now()
	r.storage.integrations[integration.Service] = integration
	return &integration, nil
}
