package store

import (
	"database/sql"
	"fmt"

	"github.com/shulsoft/gabbai/internal/model"
)

type AliyaTypeCategoryStore struct {
	db *sql.DB
}

func NewAliyaTypeCategoryStore(db *sql.DB) *AliyaTypeCategoryStore {
	return &AliyaTypeCategoryStore{db: db}
}

const categoryCols = `id, name, description, display_order, created_at, updated_at`

func scanCategory(scanner interface{ Scan(...any) error }) (*model.AliyaTypeCategory, error) {
	var c model.AliyaTypeCategory
	var order sql.NullInt64
	err := scanner.Scan(&c.ID, &c.Name, &c.Description, &order, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if order.Valid {
		n := int(order.Int64)
		c.DisplayOrder = &n
	}
	return &c, nil
}

func (s *AliyaTypeCategoryStore) Create(c model.AliyaTypeCategory) (*model.AliyaTypeCategory, error) {
	if c.ID == "" {
		c.ID = newID()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO aliya_type_categories (id, name, description, display_order) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.DisplayOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	if err := insertCategoryMembers(tx, c.ID, c.AliyaTypeIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(c.ID)
}

func insertCategoryMembers(tx *sql.Tx, categoryID string, typeIDs []string) error {
	for _, typeID := range typeIDs {
		_, err := tx.Exec(
			`INSERT INTO aliya_type_category_members (category_id, aliya_type_id) VALUES (?, ?)`,
			categoryID, typeID,
		)
		if err != nil {
			return fmt.Errorf("insert category member: %w", err)
		}
	}
	return nil
}

func (s *AliyaTypeCategoryStore) GetByID(id string) (*model.AliyaTypeCategory, error) {
	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM aliya_type_categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if err := s.loadMembers(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *AliyaTypeCategoryStore) loadMembers(c *model.AliyaTypeCategory) error {
	rows, err := s.db.Query(`SELECT aliya_type_id FROM aliya_type_category_members WHERE category_id = ? ORDER BY aliya_type_id`, c.ID)
	if err != nil {
		return fmt.Errorf("list category members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var typeID string
		if err := rows.Scan(&typeID); err != nil {
			return fmt.Errorf("scan category member: %w", err)
		}
		c.AliyaTypeIDs = append(c.AliyaTypeIDs, typeID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate category members: %w", err)
	}
	return nil
}

func (s *AliyaTypeCategoryStore) List() ([]model.AliyaTypeCategory, error) {
	rows, err := s.db.Query(`SELECT ` + categoryCols + ` FROM aliya_type_categories ORDER BY display_order IS NULL, display_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []model.AliyaTypeCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	for i := range cats {
		if err := s.loadMembers(&cats[i]); err != nil {
			return nil, err
		}
	}
	return cats, nil
}

// Update rewrites the category row and its full membership list.
func (s *AliyaTypeCategoryStore) Update(c model.AliyaTypeCategory) (*model.AliyaTypeCategory, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE aliya_type_categories SET name = ?, description = ?, display_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c.Name, c.Description, c.DisplayOrder, c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM aliya_type_category_members WHERE category_id = ?`, c.ID); err != nil {
		return nil, fmt.Errorf("clear category members: %w", err)
	}
	if err := insertCategoryMembers(tx, c.ID, c.AliyaTypeIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(c.ID)
}

func (s *AliyaTypeCategoryStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM aliya_type_categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
