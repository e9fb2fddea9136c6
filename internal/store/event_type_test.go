package store

import (
	"testing"

	"github.com/shulsoft/gabbai/internal/database"
	"github.com/shulsoft/gabbai/internal/model"
)

func setupEventTypeTestDB(t *testing.T) *EventTypeStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewEventTypeStore(db)
}

func TestEventTypeCRUD(t *testing.T) {
	s := setupEventTypeTestDB(t)

	typ, err := s.Create(model.PrayerEventType{
		DisplayName:    "Yahrzeit",
		RecurrenceType: "yearly",
		Enabled:        true,
	})
	if err != nil {
		t.Fatalf("create event type: %v", err)
	}
	if typ.ID == "" || typ.DisplayName != "Yahrzeit" {
		t.Errorf("event type = %+v", typ)
	}
	if !typ.IsRecurring() {
		t.Error("expected recurring")
	}

	typ.Enabled = false
	updated, err := s.Update(*typ)
	if err != nil {
		t.Fatalf("update event type: %v", err)
	}
	if updated.Enabled {
		t.Error("expected disabled")
	}

	if err := s.Delete(typ.ID); err != nil {
		t.Fatalf("delete event type: %v", err)
	}
	got, err := s.GetByID(typ.ID)
	if err != nil {
		t.Fatalf("get event type: %v", err)
	}
	if got != nil {
		t.Error("expected event type gone")
	}
}

func TestEventTypeDefaultsRecurrence(t *testing.T) {
	s := setupEventTypeTestDB(t)

	typ, err := s.Create(model.PrayerEventType{DisplayName: "Wedding"})
	if err != nil {
		t.Fatalf("create event type: %v", err)
	}
	if typ.RecurrenceType != "none" {
		t.Errorf("recurrence = %q, want none", typ.RecurrenceType)
	}
	if typ.IsRecurring() {
		t.Error("expected not recurring")
	}
}
