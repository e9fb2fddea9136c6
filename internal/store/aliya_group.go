package store

import (
	"database/sql"
	"fmt"

	"github.com/shulsoft/gabbai/internal/model"
)

type AliyaGroupStore struct {
	db *sql.DB
}

func NewAliyaGroupStore(db *sql.DB) *AliyaGroupStore {
	return &AliyaGroupStore{db: db}
}

const aliyaGroupCols = `id, label, hebrew_year, hebrew_month, hebrew_day, created_at, updated_at`

func scanAliyaGroup(scanner interface{ Scan(...any) error }) (*model.AliyaGroup, error) {
	var g model.AliyaGroup
	var y, m, d sql.NullInt64
	err := scanner.Scan(&g.ID, &g.Label, &y, &m, &d, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.HebrewDate = dateFromCols(y, m, d)
	g.Assignments = map[string]string{}
	return &g, nil
}

func (s *AliyaGroupStore) Create(g model.AliyaGroup) (*model.AliyaGroup, error) {
	if g.ID == "" {
		g.ID = newID()
	}
	y, m, d := dateArgs(g.HebrewDate)
	_, err := s.db.Exec(
		`INSERT INTO aliya_groups (id, label, hebrew_year, hebrew_month, hebrew_day) VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Label, y, m, d,
	)
	if err != nil {
		return nil, fmt.Errorf("insert aliya group: %w", err)
	}
	if len(g.Assignments) > 0 {
		if err := s.UpdateAssignments(g.ID, nil, g.Assignments); err != nil {
			return nil, err
		}
	}
	return s.GetByID(g.ID)
}

func (s *AliyaGroupStore) GetByID(id string) (*model.AliyaGroup, error) {
	row := s.db.QueryRow(`SELECT `+aliyaGroupCols+` FROM aliya_groups WHERE id = ?`, id)
	g, err := scanAliyaGroup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get aliya group: %w", err)
	}
	if err := s.loadAssignments(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *AliyaGroupStore) loadAssignments(g *model.AliyaGroup) error {
	rows, err := s.db.Query(`SELECT aliya_type_id, prayer_id FROM aliya_assignments WHERE group_id = ?`, g.ID)
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var typeID, prayerID string
		if err := rows.Scan(&typeID, &prayerID); err != nil {
			return fmt.Errorf("scan assignment: %w", err)
		}
		g.Assignments[typeID] = prayerID
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate assignments: %w", err)
	}
	return nil
}

// List returns all groups, most recent Hebrew date first, with assignments
// loaded.
func (s *AliyaGroupStore) List() ([]model.AliyaGroup, error) {
	rows, err := s.db.Query(`SELECT ` + aliyaGroupCols + ` FROM aliya_groups ORDER BY hebrew_year DESC, hebrew_month DESC, hebrew_day DESC`)
	if err != nil {
		return nil, fmt.Errorf("list aliya groups: %w", err)
	}
	defer rows.Close()

	var groups []model.AliyaGroup
	for rows.Next() {
		g, err := scanAliyaGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan aliya group: %w", err)
		}
		groups = append(groups, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aliya groups: %w", err)
	}

	for i := range groups {
		if err := s.loadAssignments(&groups[i]); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (s *AliyaGroupStore) Update(g model.AliyaGroup) (*model.AliyaGroup, error) {
	y, m, d := dateArgs(g.HebrewDate)
	_, err := s.db.Exec(
		`UPDATE aliya_groups SET label = ?, hebrew_year = ?, hebrew_month = ?, hebrew_day = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		g.Label, y, m, d, g.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update aliya group: %w", err)
	}
	return s.GetByID(g.ID)
}

func (s *AliyaGroupStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM aliya_groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete aliya group: %w", err)
	}
	return nil
}

func (s *AliyaGroupStore) SetAssignment(groupID, aliyaTypeID, prayerID string) error {
	return s.UpdateAssignments(groupID, nil, map[string]string{aliyaTypeID: prayerID})
}

func (s *AliyaGroupStore) RemoveAssignment(groupID, aliyaTypeID string) error {
	return s.UpdateAssignments(groupID, []string{aliyaTypeID}, nil)
}

// UpdateAssignments applies a batch in one transaction: deletions first,
// then upserts. A type id in both sets ends up assigned.
func (s *AliyaGroupStore) UpdateAssignments(groupID string, deletions []string, upserts map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, typeID := range deletions {
		if _, err := tx.Exec(`DELETE FROM aliya_assignments WHERE group_id = ? AND aliya_type_id = ?`, groupID, typeID); err != nil {
			return fmt.Errorf("delete assignment: %w", err)
		}
	}
	for typeID, prayerID := range upserts {
		_, err := tx.Exec(
			`INSERT INTO aliya_assignments (group_id, aliya_type_id, prayer_id) VALUES (?, ?, ?)
			 ON CONFLICT (group_id, aliya_type_id) DO UPDATE SET prayer_id = excluded.prayer_id`,
			groupID, typeID, prayerID,
		)
		if err != nil {
			return fmt.Errorf("upsert assignment: %w", err)
		}
	}
	if _, err := tx.Exec(`UPDATE aliya_groups SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, groupID); err != nil {
		return fmt.Errorf("touch aliya group: %w", err)
	}
	return tx.Commit()
}
