package auth

import (
	"context"
	"testing"

	"github.com/shulsoft/gabbai/internal/model"
)

func TestWithAuthAndFromContext(t *testing.T) {
	ac := AuthContext{
		UserID:    "u-1",
		Email:     "gabbai@example.com",
		Role:      model.RoleAdmin,
		SessionID: 3,
	}

	ctx := WithAuth(context.Background(), ac)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected AuthContext in context")
	}
	if got.UserID != "u-1" {
		t.Errorf("UserID = %q, want %q", got.UserID, "u-1")
	}
	if got.Email != "gabbai@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "gabbai@example.com")
	}
	if got.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", got.Role, model.RoleAdmin)
	}
	if got.SessionID != 3 {
		t.Errorf("SessionID = %d, want 3", got.SessionID)
	}
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	if ok {
		t.Error("expected false for missing AuthContext")
	}
}

func TestUserID(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{UserID: "u-7"})
	if UserID(ctx) != "u-7" {
		t.Errorf("UserID = %q, want %q", UserID(ctx), "u-7")
	}
}

func TestUserIDMissing(t *testing.T) {
	if UserID(context.Background()) != "" {
		t.Error("expected empty string for missing context")
	}
}

func TestIsGabbai(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{model.RoleMember, false},
		{model.RoleGabbai, true},
		{model.RoleAdmin, true},
	}
	for _, tt := range tests {
		ctx := WithAuth(context.Background(), AuthContext{Role: tt.role})
		if IsGabbai(ctx) != tt.want {
			t.Errorf("IsGabbai(%q) = %v, want %v", tt.role, IsGabbai(ctx), tt.want)
		}
	}
}

func TestIsGabbaiMissing(t *testing.T) {
	if IsGabbai(context.Background()) {
		t.Error("expected IsGabbai = false for missing context")
	}
}

func TestIsAdmin(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{Role: model.RoleAdmin})
	if !IsAdmin(ctx) {
		t.Error("expected IsAdmin = true for admin role")
	}
}

func TestIsAdminFalse(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{Role: model.RoleGabbai})
	if IsAdmin(ctx) {
		t.Error("expected IsAdmin = false for gabbai role")
	}
}

func TestIsAdminMissing(t *testing.T) {
	if IsAdmin(context.Background()) {
		t.Error("expected IsAdmin = false for missing context")
	}
}
