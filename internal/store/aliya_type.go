package store

import (
	"database/sql"
	"fmt"

	"github.com/shulsoft/gabbai/internal/model"
)

type AliyaTypeStore struct {
	db *sql.DB
}

func NewAliyaTypeStore(db *sql.DB) *AliyaTypeStore {
	return &AliyaTypeStore{db: db}
}

const aliyaTypeCols = `id, display_name, weight, enabled, description, display_order`

func scanAliyaType(scanner interface{ Scan(...any) error }) (*model.AliyaType, error) {
	var t model.AliyaType
	var order sql.NullInt64
	err := scanner.Scan(&t.ID, &t.DisplayName, &t.Weight, &t.Enabled, &t.Description, &order)
	if err != nil {
		return nil, err
	}
	if order.Valid {
		n := int(order.Int64)
		t.DisplayOrder = &n
	}
	return &t, nil
}

func (s *AliyaTypeStore) Create(t model.AliyaType) (*model.AliyaType, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	_, err := s.db.Exec(
		`INSERT INTO aliya_types (`+aliyaTypeCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.DisplayName, t.Weight, t.Enabled, t.Description, t.DisplayOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert aliya type: %w", err)
	}
	return s.GetByID(t.ID)
}

func (s *AliyaTypeStore) GetByID(id string) (*model.AliyaType, error) {
	row := s.db.QueryRow(`SELECT `+aliyaTypeCols+` FROM aliya_types WHERE id = ?`, id)
	t, err := scanAliyaType(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get aliya type: %w", err)
	}
	return t, nil
}

// List returns all types ordered by display_order with unordered types last.
func (s *AliyaTypeStore) List() ([]model.AliyaType, error) {
	rows, err := s.db.Query(`SELECT ` + aliyaTypeCols + ` FROM aliya_types ORDER BY display_order IS NULL, display_order, display_name`)
	if err != nil {
		return nil, fmt.Errorf("list aliya types: %w", err)
	}
	defer rows.Close()

	var types []model.AliyaType
	for rows.Next() {
		t, err := scanAliyaType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan aliya type: %w", err)
		}
		types = append(types, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aliya types: %w", err)
	}
	return types, nil
}

func (s *AliyaTypeStore) Update(t model.AliyaType) (*model.AliyaType, error) {
	_, err := s.db.Exec(
		`UPDATE aliya_types SET display_name = ?, weight = ?, enabled = ?, description = ?, display_order = ? WHERE id = ?`,
		t.DisplayName, t.Weight, t.Enabled, t.Description, t.DisplayOrder, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update aliya type: %w", err)
	}
	return s.GetByID(t.ID)
}

func (s *AliyaTypeStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM aliya_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete aliya type: %w", err)
	}
	return nil
}
