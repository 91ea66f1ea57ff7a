package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/config"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/utils"
)

func TestRolePermissions(t *testing.T) {
	admin := newAuthContext(map[string]interface{}{"role": "admin"})
	editor := newAuthContext(map[string]interface{}{"role": "editor"})
	viewer := newAuthContext(map[string]interface{}{"role": "viewer"})

	if !admin.Can(PermManagePeople) || !admin.Can(PermManageCatalog) {
		t.Error("Admin should hold every permission")
	}
	if !editor.Can(PermManageStatus) {
		t.Error("Editor should manage equipment status")
	}
	if editor.Can(PermManagePeople) {
		t.Error("Editor should not manage people")
	}
	if !viewer.Can(PermViewAssets) || !viewer.Can(PermViewReports) {
		t.Error("Viewer should view assets and reports")
	}
	if viewer.Can(PermEditAssets) {
		t.Error("Viewer should not edit assets")
	}

	var missing *AuthContext
	if missing.Can(PermViewAssets) {
		t.Error("Nil context should hold no permissions")
	}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret-key-12345"}
	user := &models.UserAuth{
		ID:    "uuid-1234",
		Email: "editor@example.com",
		Name:  "Editor Test",
		Role:  "editor",
	}

	token, _, err := utils.GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	var got *AuthContext
	handler := Auth(cfg.JWTSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromRequest(r)
		w.WriteHeader(http.StatusOK)
	}))

	// Valid token
	req := httptest.NewRequest(http.MethodGet, "/api/computers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got == nil {
		t.Fatal("AuthContext should be attached to the request")
	}
	if got.Email != user.Email || got.Role != "editor" {
		t.Errorf("AuthContext: got %+v", got)
	}

	// Missing header
	req = httptest.NewRequest(http.MethodGet, "/api/computers", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Missing header: expected 401, got %d", rec.Code)
	}

	// Garbage token
	req = httptest.NewRequest(http.MethodGet, "/api/computers", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Bad token: expected 401, got %d", rec.Code)
	}
}

func TestRequire(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret-key-12345"}
	viewer := &models.UserAuth{ID: "uuid-5678", Email: "viewer@example.com", Role: "viewer"}

	token, _, err := utils.GenerateTokens(viewer, cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	called := false
	handler := Auth(cfg.JWTSecret)(Require(PermEditAssets, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/computers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Viewer editing assets: expected 403, got %d", rec.Code)
	}
	if called {
		t.Error("Handler should not run without the permission")
	}
}
