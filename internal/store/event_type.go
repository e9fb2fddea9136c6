package store

import (
	"database/sql"
	"fmt"

	"github.com/shulsoft/gabbai/internal/model"
)

type EventTypeStore struct {
	db *sql.DB
}

func NewEventTypeStore(db *sql.DB) *EventTypeStore {
	return &EventTypeStore{db: db}
}

const eventTypeCols = `id, display_name, recurrence_type, enabled, description, display_order`

func scanEventType(scanner interface{ Scan(...any) error }) (*model.PrayerEventType, error) {
	var t model.PrayerEventType
	var order sql.NullInt64
	err := scanner.Scan(&t.ID, &t.DisplayName, &t.RecurrenceType, &t.Enabled, &t.Description, &order)
	if err != nil {
		return nil, err
	}
	if order.Valid {
		n := int(order.Int64)
		t.DisplayOrder = &n
	}
	return &t, nil
}

func (s *EventTypeStore) Create(t model.PrayerEventType) (*model.PrayerEventType, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.RecurrenceType == "" {
		t.RecurrenceType = "none"
	}
	_, err := s.db.Exec(
		`INSERT INTO prayer_event_types (`+eventTypeCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.DisplayName, t.RecurrenceType, t.Enabled, t.Description, t.DisplayOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event type: %w", err)
	}
	return s.GetByID(t.ID)
}

func (s *EventTypeStore) GetByID(id string) (*model.PrayerEventType, error) {
	row := s.db.QueryRow(`SELECT `+eventTypeCols+` FROM prayer_event_types WHERE id = ?`, id)
	t, err := scanEventType(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event type: %w", err)
	}
	return t, nil
}

func (s *EventTypeStore) List() ([]model.PrayerEventType, error) {
	rows, err := s.db.Query(`SELECT ` + eventTypeCols + ` FROM prayer_event_types ORDER BY display_order IS NULL, display_order, display_name`)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	defer rows.Close()

	var types []model.PrayerEventType
	for rows.Next() {
		t, err := scanEventType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event type: %w", err)
		}
		types = append(types, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event types: %w", err)
	}
	return types, nil
}

func (s *EventTypeStore) Update(t model.PrayerEventType) (*model.PrayerEventType, error) {
	_, err := s.db.Exec(
		`UPDATE prayer_event_types SET display_name = ?, recurrence_type = ?, enabled = ?, description = ?, display_order = ? WHERE id = ?`,
		t.DisplayName, t.RecurrenceType, t.Enabled, t.Description, t.DisplayOrder, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update event type: %w", err)
	}
	return s.GetByID(t.ID)
}

func (s *EventTypeStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM prayer_event_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event type: %w", err)
	}
	return nil
}
