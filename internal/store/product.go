package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shulsoft/gabbai/internal/model"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productCols = `id, kind, name, display_name, description, price, sizes, colors, stock, active, sort_order, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	var sizes, colors string
	err := scanner.Scan(&p.ID, &p.Kind, &p.Name, &p.DisplayName, &p.Description,
		&p.Price, &sizes, &colors, &p.Stock, &p.Active, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sizes), &p.Sizes); err != nil {
		return nil, fmt.Errorf("decode sizes: %w", err)
	}
	if err := json.Unmarshal([]byte(colors), &p.Colors); err != nil {
		return nil, fmt.Errorf("decode colors: %w", err)
	}
	return &p, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func (s *ProductStore) Create(p model.Product) (*model.Product, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	sizes, err := encodeList(p.Sizes)
	if err != nil {
		return nil, err
	}
	colors, err := encodeList(p.Colors)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`INSERT INTO products (id, kind, name, display_name, description, price, sizes, colors, stock, active, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Kind, p.Name, p.DisplayName, p.Description, p.Price, sizes, colors, p.Stock, p.Active, p.SortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return s.GetByID(p.ID)
}

func (s *ProductStore) GetByID(id string) (*model.Product, error) {
	row := s.db.QueryRow(`SELECT `+productCols+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List returns products in display order. With activeOnly set, disabled
// products are excluded.
func (s *ProductStore) List(activeOnly bool) ([]model.Product, error) {
	query := `SELECT ` + productCols + ` FROM products`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *ProductStore) Update(p model.Product) (*model.Product, error) {
	sizes, err := encodeList(p.Sizes)
	if err != nil {
		return nil, err
	}
	colors, err := encodeList(p.Colors)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`UPDATE products SET kind = ?, name = ?, display_name = ?, description = ?, price = ?, sizes = ?, colors = ?, stock = ?, active = ?, sort_order = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.Kind, p.Name, p.DisplayName, p.Description, p.Price, sizes, colors, p.Stock, p.Active, p.SortOrder, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.GetByID(p.ID)
}

func (s *ProductStore) AdjustStock(id string, delta int) error {
	_, err := s.db.Exec(`UPDATE products SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, delta, id)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}

func (s *ProductStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
