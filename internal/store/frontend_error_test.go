package store

import (
	"testing"
	"time"

	"github.com/shulsoft/gabbai/internal/database"
	"github.com/shulsoft/gabbai/internal/model"
)

func setupFrontendErrorTestDB(t *testing.T) *FrontendErrorStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewFrontendErrorStore(db)
}

func TestFrontendErrorCreateAndList(t *testing.T) {
	s := setupFrontendErrorTestDB(t)

	e, err := s.Create(model.FrontendError{
		UserEmail:    "m@example.com",
		ErrorType:    model.ErrorTypeReact,
		ErrorMessage: "boom",
		URL:          "/aliyot",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if e.ID == "" || e.ErrorMessage != "boom" {
		t.Errorf("error = %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Error("expected timestamp defaulted")
	}

	for i := 0; i < 3; i++ {
		if _, err := s.Create(model.FrontendError{ErrorType: model.ErrorTypeJavascript, ErrorMessage: "x"}); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	all, err := s.List(10)
	if err != nil {
		t.Fatalf("list errors: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("len = %d, want 4", len(all))
	}

	limited, err := s.List(2)
	if err != nil {
		t.Fatalf("list errors: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited = %d, want 2", len(limited))
	}
}

func TestFrontendErrorDeleteOlderThan(t *testing.T) {
	s := setupFrontendErrorTestDB(t)

	if _, err := s.Create(model.FrontendError{
		ErrorType:    model.ErrorTypeJavascript,
		ErrorMessage: "ancient",
		Timestamp:    time.Now().UTC().AddDate(0, -2, 0),
	}); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := s.Create(model.FrontendError{ErrorType: model.ErrorTypeJavascript, ErrorMessage: "fresh"}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	n, err := s.DeleteOlderThan(time.Now().UTC().AddDate(0, -1, 0))
	if err != nil {
		t.Fatalf("delete older than: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	rest, _ := s.List(10)
	if len(rest) != 1 || rest[0].ErrorMessage != "fresh" {
		t.Errorf("rest = %+v", rest)
	}
}
