package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
	"github.com/R3E-Network/petstore/internal/app/storage"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.ItemStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)
var _ storage.CartStore = (*Store)(nil)
var _ storage.CartPurger = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to dsn with the lib/pq driver.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func notFound(err error, resource, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, id)
	}
	return err
}

const uniqueViolation = "23505"

func conflict(err error, resource, id string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperrors.Conflict(fmt.Sprintf("%s %s already exists", resource, id))
	}
	return err
}

// --- ProductStore -----------------------------------------------------------

func (s *Store) CreateProduct(ctx context.Context, p product.Product) (product.Product, error) {
	p.CreatedAt = time.Now().UTC()
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO products (number, name, description, photo_file_name, created_at)
		VALUES (:number, :name, :description, :photo_file_name, :created_at)
	`, p)
	if err != nil {
		return product.Product{}, conflict(err, "product", p.Number)
	}
	return p, nil
}

func (s *Store) GetProduct(ctx context.Context, number string) (product.Product, error) {
	var p product.Product
	err := s.db.GetContext(ctx, &p, `
		SELECT number, name, description, photo_file_name, created_at
		FROM products
		WHERE number = $1
	`, number)
	if err != nil {
		return product.Product{}, notFound(err, "product", number)
	}
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]product.Product, error) {
	result := []product.Product{}
	err := s.db.SelectContext(ctx, &result, `
		SELECT number, name, description, photo_file_name, created_at
		FROM products
		ORDER BY name, number
	`)
	return result, err
}

func (s *Store) SearchProducts(ctx context.Context, keyword string) ([]product.Product, error) {
	result := []product.Product{}
	err := s.db.SelectContext(ctx, &result, `
		SELECT number, name, description, photo_file_name, created_at
		FROM products
		WHERE name ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\'
		ORDER BY name, number
	`, containsPattern(keyword))
	return result, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching keyword literally anywhere.
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(keyword)) + "%"
}

// --- ItemStore --------------------------------------------------------------

func (s *Store) CreateItem(ctx context.Context, item product.Item) (product.Item, error) {
	item.CreatedAt = time.Now().UTC()
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO items (number, product_number, description, price, created_at)
		VALUES (:number, :product_number, :description, :price, :created_at)
	`, item)
	if err != nil {
		return product.Item{}, conflict(err, "item", item.Number)
	}
	return item, nil
}

func (s *Store) GetItem(ctx context.Context, number string) (product.Item, error) {
	var item product.Item
	err := s.db.GetContext(ctx, &item, `
		SELECT number, product_number, description, price, created_at
		FROM items
		WHERE number = $1
	`, number)
	if err != nil {
		return product.Item{}, notFound(err, "item", number)
	}
	return item, nil
}

func (s *Store) ListItems(ctx context.Context, productNumber string) ([]product.Item, error) {
	result := []product.Item{}
	err := s.db.SelectContext(ctx, &result, `
		SELECT number, product_number, description, price, created_at
		FROM items
		WHERE product_number = $1
		ORDER BY number
	`, productNumber)
	return result, err
}

// --- OrderStore -------------------------------------------------------------

type orderRow struct {
	Number       string          `db:"number"`
	Total        decimal.Decimal `db:"total"`
	CardType     string          `db:"card_type"`
	CardNumber   string          `db:"card_number"`
	CardExpiry   string          `db:"card_expiry"`
	FirstName    string          `db:"first_name"`
	LastName     string          `db:"last_name"`
	EmailAddress string          `db:"email_address"`
	PlacedAt     time.Time       `db:"placed_at"`
}

func (s *Store) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return order.Order{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	if o.Number == "" {
		var seq int64
		if err := tx.GetContext(ctx, &seq, `SELECT nextval('order_number_seq')`); err != nil {
			return order.Order{}, fmt.Errorf("allocate order number: %w", err)
		}
		o.Number = fmt.Sprintf("%08d", seq)
	}
	if o.PlacedAt.IsZero() {
		o.PlacedAt = time.Now().UTC()
	}

	row := orderRow{
		Number:       o.Number,
		Total:        o.Total,
		CardType:     o.Payment.Type,
		CardNumber:   o.Payment.Number,
		CardExpiry:   o.Payment.Expiry,
		FirstName:    o.Billing.FirstName,
		LastName:     o.Billing.LastName,
		EmailAddress: o.Billing.EmailAddress,
		PlacedAt:     o.PlacedAt,
	}
	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO orders (number, total, card_type, card_number, card_expiry,
			first_name, last_name, email_address, placed_at)
		VALUES (:number, :total, :card_type, :card_number, :card_expiry,
			:first_name, :last_name, :email_address, :placed_at)
	`, row); err != nil {
		return order.Order{}, err
	}

	for i, line := range o.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_number, position, item_number, description, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.Number, i, line.ItemNumber, line.Description, line.UnitPrice, line.Quantity); err != nil {
			return order.Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

func (s *Store) GetOrder(ctx context.Context, number string) (order.Order, error) {
	var row orderRow
	err := s.db.GetContext(ctx, &row, `
		SELECT number, total, card_type, card_number, card_expiry,
			first_name, last_name, email_address, placed_at
		FROM orders
		WHERE number = $1
	`, number)
	if err != nil {
		return order.Order{}, notFound(err, "order", number)
	}

	lines := []order.Line{}
	if err := s.db.SelectContext(ctx, &lines, `
		SELECT item_number, description, unit_price, quantity
		FROM order_lines
		WHERE order_number = $1
		ORDER BY position
	`, number); err != nil {
		return order.Order{}, err
	}

	return order.Order{
		Number:   row.Number,
		Lines:    lines,
		Total:    row.Total,
		Payment:  order.CreditCard{Type: row.CardType, Number: row.CardNumber, Expiry: row.CardExpiry},
		Billing:  order.Address{FirstName: row.FirstName, LastName: row.LastName, EmailAddress: row.EmailAddress},
		PlacedAt: row.PlacedAt,
	}, nil
}

// --- CartStore --------------------------------------------------------------

func (s *Store) LoadCart(ctx context.Context, sessionID string) (cart.Cart, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw, `SELECT contents FROM carts WHERE session_id = $1`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return cart.Cart{}, nil
	}
	if err != nil {
		return cart.Cart{}, err
	}

	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return cart.Cart{}, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	return c, nil
}

func (s *Store) SaveCart(ctx context.Context, sessionID string, c cart.Cart) error {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO carts (session_id, contents, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET contents = EXCLUDED.contents, updated_at = EXCLUDED.updated_at
	`, sessionID, raw, c.UpdatedAt)
	return err
}

func (s *Store) DeleteCart(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM carts WHERE session_id = $1`, sessionID)
	return err
}

func (s *Store) PurgeCarts(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM carts WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
