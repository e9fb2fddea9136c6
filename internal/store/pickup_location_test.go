package store

import (
	"testing"

	"github.com/shulsoft/gabbai/internal/database"
	"github.com/shulsoft/gabbai/internal/model"
)

func setupPickupLocationTestDB(t *testing.T) *PickupLocationStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPickupLocationStore(db)
}

func TestPickupLocationCRUD(t *testing.T) {
	s := setupPickupLocationTestDB(t)

	l, err := s.Create(model.PickupLocation{
		Name:        "Geula",
		ContactName: "Mrs. Katz",
		City:        "Jerusalem",
		Street:      "Malchei Yisrael 10",
		PhoneNumber: "02-5001234",
		Active:      true,
	})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	if l.ID == "" || l.Name != "Geula" || !l.Active {
		t.Errorf("location = %+v", l)
	}

	l.Active = false
	updated, err := s.Update(*l)
	if err != nil {
		t.Fatalf("update location: %v", err)
	}
	if updated.Active {
		t.Error("expected inactive")
	}

	if err := s.Delete(l.ID); err != nil {
		t.Fatalf("delete location: %v", err)
	}
	got, err := s.GetByID(l.ID)
	if err != nil {
		t.Fatalf("get location: %v", err)
	}
	if got != nil {
		t.Error("expected location gone")
	}
}

func TestPickupLocationListActiveOnly(t *testing.T) {
	s := setupPickupLocationTestDB(t)

	seed := []model.PickupLocation{
		{Name: "Bnei Brak", Active: true},
		{Name: "Ashdod", Active: true},
		{Name: "Closed", Active: false},
	}
	for _, l := range seed {
		if _, err := s.Create(l); err != nil {
			t.Fatalf("create location: %v", err)
		}
	}

	active, err := s.List(true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active = %d, want 2", len(active))
	}
	if active[0].Name != "Ashdod" || active[1].Name != "Bnei Brak" {
		t.Errorf("order = %q, %q", active[0].Name, active[1].Name)
	}

	all, err := s.List(false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}
}
