package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// ListDishes reads the raw catalog documents. Name and price extraction
// happens in the service layer, since the source stores them loosely typed.
func (r *PostgresRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, doc FROM dishes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			continue
		}

		details := map[string]interface{}{}
		if err := json.Unmarshal(doc, &details); err != nil {
			continue
		}
		dishes = append(dishes, domain.Dish{ID: id, Details: details})
	}
	return dishes, rows.Err()
}

// CreateOrder writes the order header and every item in a single
// transaction. Either the whole order lands or none of it does. The store
// assigns the order id and the creation timestamp.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	order.ID = uuid.NewString()
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, user_id, order_start_datetime, order_end_datetime, total_price, total_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, order.ID, order.UserID, order.OrderStartDatetime, order.OrderEndDatetime,
		order.TotalPrice, order.TotalCount).Scan(&order.CreatedAt); err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, dish_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, item.DishID, item.Name, item.Price, item.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRowContext(ctx,
		`SELECT qr_code FROM orders WHERE id = $1`, orderID).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, COALESCE(order_start_datetime, ''), COALESCE(order_end_datetime, ''),
		       total_price, total_count, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.OrderStartDatetime,
			&order.OrderEndDatetime, &order.TotalPrice, &order.TotalCount, &order.CreatedAt); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT dish_id, COALESCE(name, ''), price, quantity, grade
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item  domain.OrderItem
			grade sql.NullInt64
		)
		if err := rows.Scan(&item.DishID, &item.Name, &item.Price, &item.Quantity, &grade); err != nil {
			continue
		}
		if grade.Valid {
			g := int(grade.Int64)
			item.Grade = &g
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindOrderItem returns the row id of the first item in the order whose dish
// reference matches dishID. Duplicate dish ids within one order resolve to
// the earliest inserted row.
func (r *PostgresRepository) FindOrderItem(ctx context.Context, orderID, dishID string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT id FROM order_items
		WHERE order_id = $1 AND dish_id = $2
		ORDER BY id
		LIMIT 1
	`, orderID, dishID).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) UpdateItemGrade(ctx context.Context, itemID int64, grade int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE order_items SET grade = $1 WHERE id = $2`, grade, itemID)
	return err
}

// EnsureSchema applies the idempotent DDL the service needs at startup.
func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dishes (
			id TEXT PRIMARY KEY,
			doc JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			order_start_datetime TEXT,
			order_end_datetime TEXT,
			total_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_count INTEGER NOT NULL DEFAULT 0,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id TEXT NOT NULL,
			dish_id TEXT NOT NULL,
			name TEXT,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			quantity INTEGER NOT NULL DEFAULT 0,
			grade INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
