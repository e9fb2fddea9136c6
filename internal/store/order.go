package store

import (
	"database/sql"
	"fmt"

	"github.com/shulsoft/gabbai/internal/model"
)

type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

const orderCols = `id, first_name, last_name, email, phone_number, pickup_location_id, comments, status, total_cost, discount, created_at, updated_at`

func scanOrder(scanner interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	err := scanner.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.PhoneNumber,
		&o.PickupLocationID, &o.Comments, &o.Status, &o.TotalCost, &o.Discount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrderStore) Create(o model.Order) (*model.Order, error) {
	if o.ID == "" {
		o.ID = newID()
	}
	if o.Status == "" {
		o.Status = model.OrderStatusReceived
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO orders (id, first_name, last_name, email, phone_number, pickup_location_id, comments, status, total_cost, discount)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.FirstName, o.LastName, o.Email, o.PhoneNumber, o.PickupLocationID, o.Comments, o.Status, o.TotalCost, o.Discount,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	for _, item := range o.Items {
		if item.ID == "" {
			item.ID = newID()
		}
		_, err := tx.Exec(
			`INSERT INTO order_items (id, order_id, product_id, size, color, amount, unit_price) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, o.ID, item.ProductID, item.Size, item.Color, item.Amount, item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(o.ID)
}

func (s *OrderStore) GetByID(id string) (*model.Order, error) {
	row := s.db.QueryRow(`SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := s.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderStore) loadItems(o *model.Order) error {
	rows, err := s.db.Query(`SELECT id, order_id, product_id, size, color, amount, unit_price FROM order_items WHERE order_id = ?`, o.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Size, &item.Color, &item.Amount, &item.UnitPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}
	return nil
}

// List returns orders newest first, optionally filtered by status.
func (s *OrderStore) List(status string) ([]model.Order, error) {
	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = s.db.Query(`SELECT ` + orderCols + ` FROM orders ORDER BY created_at DESC`)
	} else {
		rows, err = s.db.Query(`SELECT `+orderCols+` FROM orders WHERE status = ? ORDER BY created_at DESC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range orders {
		if err := s.loadItems(&orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// CountByEmail returns how many orders the given email has placed.
func (s *OrderStore) CountByEmail(email string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders by email: %w", err)
	}
	return n, nil
}

// ListByEmail returns the orders placed by the given email, newest first.
func (s *OrderStore) ListByEmail(email string) ([]model.Order, error) {
	rows, err := s.db.Query(`SELECT `+orderCols+` FROM orders WHERE email = ? ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, fmt.Errorf("list orders by email: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range orders {
		if err := s.loadItems(&orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *OrderStore) UpdateStatus(id, status string) (*model.Order, error) {
	_, err := s.db.Exec(`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return s.GetByID(id)
}

func (s *OrderStore) UpdateDiscount(id string, discount float64) (*model.Order, error) {
	_, err := s.db.Exec(`UPDATE orders SET discount = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, discount, id)
	if err != nil {
		return nil, fmt.Errorf("update order discount: %w", err)
	}
	return s.GetByID(id)
}

func (s *OrderStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
