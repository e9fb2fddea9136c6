package store

import (
	"testing"

	"github.com/shulsoft/gabbai/internal/database"
	"github.com/shulsoft/gabbai/internal/hebdate"
	"github.com/shulsoft/gabbai/internal/model"
)

func setupAliyaGroupTestDB(t *testing.T) *AliyaGroupStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAliyaGroupStore(db)
}

func TestAliyaGroupCRUD(t *testing.T) {
	s := setupAliyaGroupTestDB(t)

	g, err := s.Create(model.AliyaGroup{
		Label:      "Shabbat Bereshit",
		HebrewDate: hebdate.New(5786, 7, 24),
		Assignments: map[string]string{
			"kohen": "p1",
			"levi":  "p2",
		},
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if g.ID == "" {
		t.Error("expected generated id")
	}
	if g.Label != "Shabbat Bereshit" {
		t.Errorf("label = %q", g.Label)
	}
	if !g.HebrewDate.Equal(hebdate.New(5786, 7, 24)) {
		t.Errorf("hebrew date = %v", g.HebrewDate)
	}
	if len(g.Assignments) != 2 || g.Assignments["kohen"] != "p1" {
		t.Errorf("assignments = %+v", g.Assignments)
	}

	g.Label = "Shabbat Bereshit (morning)"
	updated, err := s.Update(*g)
	if err != nil {
		t.Fatalf("update group: %v", err)
	}
	if updated.Label != "Shabbat Bereshit (morning)" {
		t.Errorf("label = %q", updated.Label)
	}
	if len(updated.Assignments) != 2 {
		t.Errorf("update dropped assignments: %+v", updated.Assignments)
	}

	if err := s.Delete(g.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}
	got, err := s.GetByID(g.ID)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if got != nil {
		t.Error("expected group gone")
	}
}

func TestAliyaGroupGetUnknown(t *testing.T) {
	s := setupAliyaGroupTestDB(t)

	got, err := s.GetByID("missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestAliyaGroupListOrder(t *testing.T) {
	s := setupAliyaGroupTestDB(t)

	dates := []hebdate.Date{
		hebdate.New(5785, 7, 10),
		hebdate.New(5786, 8, 2),
		hebdate.New(5786, 7, 24),
	}
	for _, d := range dates {
		if _, err := s.Create(model.AliyaGroup{Label: "g", HebrewDate: d}); err != nil {
			t.Fatalf("create group: %v", err)
		}
	}

	groups, err := s.List()
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("len = %d, want 3", len(groups))
	}
	if !groups[0].HebrewDate.Equal(hebdate.New(5786, 8, 2)) {
		t.Errorf("first = %v, want newest", groups[0].HebrewDate)
	}
	if !groups[2].HebrewDate.Equal(hebdate.New(5785, 7, 10)) {
		t.Errorf("last = %v, want oldest", groups[2].HebrewDate)
	}
}

func TestAliyaGroupAssignments(t *testing.T) {
	s := setupAliyaGroupTestDB(t)

	g, err := s.Create(model.AliyaGroup{Label: "g", HebrewDate: hebdate.New(5786, 7, 24)})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if err := s.SetAssignment(g.ID, "kohen", "p1"); err != nil {
		t.Fatalf("set assignment: %v", err)
	}
	// Re-assigning the same type replaces the congregant.
	if err := s.SetAssignment(g.ID, "kohen", "p2"); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	got, _ := s.GetByID(g.ID)
	if got.Assignments["kohen"] != "p2" {
		t.Errorf("kohen = %q, want p2", got.Assignments["kohen"])
	}

	if err := s.RemoveAssignment(g.ID, "kohen"); err != nil {
		t.Fatalf("remove assignment: %v", err)
	}
	// Removing an absent assignment is not an error.
	if err := s.RemoveAssignment(g.ID, "kohen"); err != nil {
		t.Fatalf("remove absent assignment: %v", err)
	}

	got, _ = s.GetByID(g.ID)
	if len(got.Assignments) != 0 {
		t.Errorf("assignments = %+v, want empty", got.Assignments)
	}
}

func TestAliyaGroupUpdateAssignmentsBatch(t *testing.T) {
	s := setupAliyaGroupTestDB(t)

	g, err := s.Create(model.AliyaGroup{
		Label:      "g",
		HebrewDate: hebdate.New(5786, 7, 24),
		Assignments: map[string]string{
			"kohen":   "p1",
			"levi":    "p2",
			"shlishi": "p3",
		},
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	// Deletions apply before upserts, so a type in both sets ends up
	// assigned.
	err = s.UpdateAssignments(g.ID,
		[]string{"levi", "shlishi"},
		map[string]string{"shlishi": "p4", "maftir": "p5"},
	)
	if err != nil {
		t.Fatalf("update assignments: %v", err)
	}

	got, _ := s.GetByID(g.ID)
	want := map[string]string{
		"kohen":   "p1",
		"shlishi": "p4",
		"maftir":  "p5",
	}
	if len(got.Assignments) != len(want) {
		t.Fatalf("assignments = %+v, want %+v", got.Assignments, want)
	}
	for typeID, prayerID := range want {
		if got.Assignments[typeID] != prayerID {
			t.Errorf("%s = %q, want %q", typeID, got.Assignments[typeID], prayerID)
		}
	}
}
