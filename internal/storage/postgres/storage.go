package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses; tests substitute a
// mock through newPgxPool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type integrationRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Integrations() repository.IntegrationRepository {
	return &integrationRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            sku TEXT UNIQUE,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            metal_type TEXT NOT NULL DEFAULT '',
            gemstone TEXT NOT NULL DEFAULT '',
            weight DOUBLE PRECISION NOT NULL DEFAULT 0,
            images TEXT[] NOT NULL DEFAULT '{}',
            stock_quantity INT NOT NULL DEFAULT 0,
            is_featured BOOLEAN NOT NULL DEFAULT FALSE,
            is_bundle BOOLEAN NOT NULL DEFAULT FALSE,
            bundle_discount DOUBLE PRECISION NOT NULL DEFAULT 0,
            min_price DOUBLE PRECISION,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_number TEXT NOT NULL,
            email TEXT NOT NULL,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            address TEXT NOT NULL,
            city TEXT NOT NULL,
            state TEXT NOT NULL,
            zip_code TEXT NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL,
            bundle_discount DOUBLE PRECISION NOT NULL,
            tax DOUBLE PRECISION NOT NULL,
            shipping DOUBLE PRECISION NOT NULL,
            total DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            stripe_payment_intent_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            product_id UUID REFERENCES products(id) ON DELETE SET NULL,
            product_name TEXT NOT NULL,
            product_price DOUBLE PRECISION NOT NULL,
            quantity INT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS integrations (
            service TEXT PRIMARY KEY,
            config JSONB NOT NULL DEFAULT '{}',
            is_active BOOLEAN NOT NULL DEFAULT FALSE,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_intent ON orders(stripe_payment_intent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isCanonicalID(ref string) bool {
	_, err := uuid.Parse(ref)
	return err == nil
}

// --- ProductRepository implementation ---

const productColumns = `id, COALESCE(sku, ''), name, description, price, category, metal_type, gemstone,
        weight, images, stock_quantity, is_featured, is_bundle, bundle_discount, min_price, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Category, &p.MetalType,
		&p.Gemstone, &p.Weight, &p.Images, &p.StockQuantity, &p.IsFeatured, &p.IsBundle,
		&p.BundleDiscount, &p.MinPrice, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, domainErrors.NewStorageError("list products", err)
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domainErrors.NewStorageError("scan product", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.NewStorageError("list products", err)
	}
	return result, nil
}

func (r *productRepository) Get(ctx context.Context, ref string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku=$1`
	if isCanonicalID(ref) {
		query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	}
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewStorageError("get product", err)
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products
        (sku, name, description, price, category, metal_type, gemstone, weight, images,
         stock_quantity, is_featured, is_bundle, bundle_discount, min_price)
        VALUES (NULLIF($1, ''), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		product.SKU, product.Name, product.Description, product.Price, product.Category,
		product.MetalType, product.Gemstone, product.Weight, product.Images,
		product.StockQuantity, product.IsFeatured, product.IsBundle, product.BundleDiscount,
		product.MinPrice,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, domainErrors.NewStorageError("create product", err)
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, ref string, update model.ProductUpdate) (*model.Product, error) {
	assignments := []string{"updated_at=NOW()"}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.Price != nil {
		appendSet("price", *update.Price)
	}
	if update.Description != nil {
		appendSet("description", *update.Description)
	}
	if update.Stock != nil {
		appendSet("stock_quantity", *update.Stock)
	}
	if update.Images != nil {
		appendSet("images", *update.Images)
	}
	if update.IsBundle != nil {
		appendSet("is_bundle", *update.IsBundle)
	}
	if update.MinPrice != nil {
		appendSet("min_price", *update.MinPrice)
	}

	column := "sku"
	if isCanonicalID(ref) {
		column = "id"
	}
	args = append(args, ref)

	query := fmt.Sprintf(`UPDATE products SET %s WHERE %s=$%d RETURNING %s`,
		strings.Join(assignments, ", "), column, len(args), productColumns)

	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewStorageError("update product", err)
	}
	return p, nil
}

func (r *productRepository) Delete(ctx context.Context, ref string) error {
	query := `DELETE FROM products WHERE sku=$1`
	if isCanonicalID(ref) {
		query = `DELETE FROM products WHERE id=$1`
	}
	tag, err := r.storage.pool.Exec(ctx, query, ref)
	if err != nil {
		return domainErrors.NewStorageError("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) UpsertBySKU(ctx context.Context, products []model.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	const query = `INSERT INTO products
        (sku, name, description, price, category, metal_type, gemstone, weight, images,
         stock_quantity, is_featured, is_bundle, bundle_discount)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (sku) DO UPDATE SET
            name=EXCLUDED.name, description=EXCLUDED.description, price=EXCLUDED.price,
            category=EXCLUDED.category, metal_type=EXCLUDED.metal_type, gemstone=EXCLUDED.gemstone,
            weight=EXCLUDED.weight, images=EXCLUDED.images, stock_quantity=EXCLUDED.stock_quantity,
            is_featured=EXCLUDED.is_featured, is_bundle=EXCLUDED.is_bundle,
            bundle_discount=EXCLUDED.bundle_discount, updated_at=NOW()`

	count := 0
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, p := range products {
			if _, err := tx.Exec(ctx, query,
				p.SKU, p.Name, p.Description, p.Price, p.Category, p.MetalType, p.Gemstone,
				p.Weight, p.Images, p.StockQuantity, p.IsFeatured, p.IsBundle, p.BundleDiscount,
			); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, domainErrors.NewStorageError("upsert products", err)
	}
	return count, nil
}

func (r *productRepository) ResolveSKUs(ctx context.Context, skus []string) (map[string]string, error) {
	if len(skus) == 0 {
		return map[string]string{}, nil
	}

	const query = `SELECT id, sku FROM products WHERE sku = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, skus)
	if err != nil {
		return nil, domainErrors.NewStorageError("resolve skus", err)
	}
	defer rows.Close()

	resolved := make(map[string]string, len(skus))
	for rows.Next() {
		var id, sku string
		if err := rows.Scan(&id, &sku); err != nil {
			return nil, domainErrors.NewStorageError("resolve skus", err)
		}
		resolved[sku] = id
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.NewStorageError("resolve skus", err)
	}
	return resolved, nil
}

func (r *productRepository) ReplaceImages(ctx context.Context, id string, images []string) error {
	const query = `UPDATE products SET images=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, images, id)
	if err != nil {
		return domainErrors.NewStorageError("replace images", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, domainErrors.NewStorageError("count products", err)
	}
	return count, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, order_number, email, first_name, last_name, address, city, state, zip_code,
        subtotal, bundle_discount, tax, shipping, total, status, payment_status,
        stripe_payment_intent_id, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.Email, &o.FirstName, &o.LastName, &o.Address, &o.City,
		&o.State, &o.ZipCode, &o.Subtotal, &o.BundleDiscount, &o.Tax, &o.Shipping, &o.Total,
		&o.Status, &o.PaymentStatus, &o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order, items []model.OrderItem) (*model.Order, []model.OrderItem, error) {
	const insertOrder = `INSERT INTO orders
        (order_number, email, first_name, last_name, address, city, state, zip_code,
         subtotal, bundle_discount, tax, shipping, total, status, payment_status, stripe_payment_intent_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id, created_at, updated_at`

	const insertItem = `INSERT INTO order_items
        (order_id, product_id, product_name, product_price, quantity)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	saved := make([]model.OrderItem, len(items))
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertOrder,
			order.Number, order.Email, order.FirstName, order.LastName, order.Address,
			order.City, order.State, order.ZipCode, order.Subtotal, order.BundleDiscount,
			order.Tax, order.Shipping, order.Total, order.Status, order.PaymentStatus,
			order.PaymentIntentID,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		for i, item := range items {
			item.OrderID = order.ID
			if err := tx.QueryRow(ctx, insertItem,
				item.OrderID, item.ProductID, item.ProductName, item.ProductPrice, item.Quantity,
			).Scan(&item.ID); err != nil {
				return err
			}
			saved[i] = item
		}
		return nil
	})
	if err != nil {
		return nil, nil, domainErrors.NewStorageError("create order", err)
	}

	return &order, saved, nil
}

func (r *orderRepository) GetWithItems(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domainErrors.ErrNotFound
		}
		return nil, nil, domainErrors.NewStorageError("get order", err)
	}

	const itemsQuery = `SELECT id, order_id, product_id, product_name, product_price, quantity
                        FROM order_items WHERE order_id=$1`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, nil, domainErrors.NewStorageError("get order items", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductPrice, &item.Quantity); err != nil {
			return nil, nil, domainErrors.NewStorageError("scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, domainErrors.NewStorageError("get order items", err)
	}

	return order, items, nil
}

func (r *orderRepository) GetByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE stripe_payment_intent_id=$1`, intentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewStorageError("get order by intent", err)
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, domainErrors.NewStorageError("list orders", err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domainErrors.NewStorageError("scan order", err)
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.NewStorageError("list orders", err)
	}
	return result, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, orderID string) error {
	const query = `UPDATE orders SET payment_status=$1, status=$2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, model.PaymentStatusPaid, model.OrderStatusProcessing, orderID)
	if err != nil {
		return domainErrors.NewStorageError("mark order paid", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ListAwaitingPayment(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE payment_status=$1 AND stripe_payment_intent_id IS NOT NULL AND created_at < $2
                   ORDER BY created_at
                   LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.PaymentStatusPending, createdBefore, limit)
	if err != nil {
		return nil, domainErrors.NewStorageError("list awaiting payment", err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domainErrors.NewStorageError("scan order", err)
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.NewStorageError("list awaiting payment", err)
	}
	return result, nil
}

// --- IntegrationRepository implementation ---

func (r *integrationRepository) Get(ctx context.Context, service string) (*model.Integration, error) {
	const query = `SELECT service, config, is_active, updated_at FROM integrations WHERE service=$1`
	var integration model.Integration
	err := r.storage.pool.QueryRow(ctx, query, service).Scan(&integration.Service,
		&integration.Config, &integration.IsActive, &integration.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewStorageError("get integration", err)
	}
	return &integration, nil
}

func (r *integrationRepository) Upsert(ctx context.Context, integration model.Integration) (*model.Integration, error) {
	const query = `INSERT INTO integrations (service, config, is_active, updated_at)
                   VALUES ($1, $2, $3, NOW())
                   ON CONFLICT (service) DO UPDATE SET
                       config=EXCLUDED.config, is_active=EXCLUDED.is_active, updated_at=NOW()
                   RETURNING updated_at`
	err := r.storage.pool.QueryRow(ctx, query, integration.Service, integration.Config,
		integration.IsActive).Scan(&integration.UpdatedAt)
	if err != nil {
		return nil, domainErrors.NewStorageError("upsert integration", err)
	}
	return &integration, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
