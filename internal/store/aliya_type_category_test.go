package store

import (
	"testing"

	"github.com/shulsoft/gabbai/internal/database"
	"github.com/shulsoft/gabbai/internal/model"
)

func setupCategoryTestDB(t *testing.T) *AliyaTypeCategoryStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAliyaTypeCategoryStore(db)
}

func TestCategoryCRUD(t *testing.T) {
	s := setupCategoryTestDB(t)

	c, err := s.Create(model.AliyaTypeCategory{
		Name:         "Regular aliyot",
		AliyaTypeIDs: []string{"kohen", "levi", "shlishi"},
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if c.ID == "" || c.Name != "Regular aliyot" {
		t.Errorf("category = %+v", c)
	}
	if len(c.AliyaTypeIDs) != 3 {
		t.Errorf("members = %v", c.AliyaTypeIDs)
	}

	// Update rewrites the membership list completely.
	c.Name = "Weekday aliyot"
	c.AliyaTypeIDs = []string{"kohen"}
	updated, err := s.Update(*c)
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Name != "Weekday aliyot" {
		t.Errorf("name = %q", updated.Name)
	}
	if len(updated.AliyaTypeIDs) != 1 || updated.AliyaTypeIDs[0] != "kohen" {
		t.Errorf("members = %v", updated.AliyaTypeIDs)
	}

	if err := s.Delete(c.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	got, err := s.GetByID(c.ID)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if got != nil {
		t.Error("expected category gone")
	}
}

func TestCategoryListOrdering(t *testing.T) {
	s := setupCategoryTestDB(t)

	one := 1
	seed := []model.AliyaTypeCategory{
		{Name: "Unordered B"},
		{Name: "Honors", DisplayOrder: &one},
		{Name: "Unordered A"},
	}
	for _, c := range seed {
		if _, err := s.Create(c); err != nil {
			t.Fatalf("create category: %v", err)
		}
	}

	cats, err := s.List()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	want := []string{"Honors", "Unordered A", "Unordered B"}
	if len(cats) != len(want) {
		t.Fatalf("len = %d, want %d", len(cats), len(want))
	}
	for i, name := range want {
		if cats[i].Name != name {
			t.Errorf("cats[%d] = %q, want %q", i, cats[i].Name, name)
		}
	}
}
