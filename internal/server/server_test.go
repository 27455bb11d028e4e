package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gkobilansky/shield-study/internal/permissions"
	"github.com/gkobilansky/shield-study/internal/server"
	"github.com/gkobilansky/shield-study/internal/store"
	"github.com/gkobilansky/shield-study/internal/study"
	"github.com/gkobilansky/shield-study/internal/testutil"
)

const testID = "small-study@shield.mozilla.org"

type failingPermissions struct{}

func (failingPermissions) DataPermissions(ctx context.Context) (study.DataPermissions, error) {
	return study.DataPermissions{}, errors.New("permissions unavailable")
}

func setupServer(t *testing.T, perms study.Permissions) (*server.Server, *store.SQLiteStore) {
	t.Helper()

	s := testutil.SetupTestStore(t)
	b := study.NewBuilder(study.Host{
		Runtime:     study.ExtensionID(testID),
		Storage:     s,
		Permissions: perms,
	}, study.Base(testID), nil)

	return server.New(b, s, 0, "", nil), s
}

func TestHealth(t *testing.T) {
	srv, s := setupServer(t, permissions.Static{Shield: true})
	_ = s.Set(context.Background(), map[string]any{study.AllowedToEnrollKey: true})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp server.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("got status %s, want ok", resp.Status)
	}
	if resp.CachedKeys != 1 {
		t.Errorf("got cached_keys %d, want 1", resp.CachedKeys)
	}
}

func TestSetup_ReturnsResolvedSetup(t *testing.T) {
	srv, s := setupServer(t, permissions.Static{Shield: true})

	req := httptest.NewRequest(http.MethodGet, "/setup", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("got Content-Type %s", ct)
	}

	var setup study.Setup
	if err := json.NewDecoder(w.Body).Decode(&setup); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !setup.AllowEnroll {
		t.Error("expected allowEnroll true")
	}
	if err := setup.Validate(); err != nil {
		t.Errorf("served setup is invalid: %v", err)
	}

	// First run cached the decision in the store.
	value, ok, err := s.Get(context.Background(), study.AllowedToEnrollKey)
	if err != nil || !ok || string(value) != "true" {
		t.Errorf("got cache (%s, %v, %v), want true", value, ok, err)
	}
}

func TestSetup_PermissionsFailure(t *testing.T) {
	srv, _ := setupServer(t, failingPermissions{})

	req := httptest.NewRequest(http.MethodGet, "/setup", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestSetup_MethodNotAllowed(t *testing.T) {
	srv, _ := setupServer(t, permissions.Static{Shield: true})

	req := httptest.NewRequest(http.MethodPost, "/setup", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestEnroll(t *testing.T) {
	srv, _ := setupServer(t, permissions.Static{})

	req := httptest.NewRequest(http.MethodGet, "/enroll", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "{\"allowEnroll\":false}\n" {
		t.Errorf("got body %q", got)
	}
}

func TestReset_RequiresToken(t *testing.T) {
	srv, _ := setupServer(t, permissions.Static{Shield: true})

	tests := []struct {
		name   string
		target string
		header string
	}{
		{"no token", "/admin/reset", ""},
		{"wrong query token", "/admin/reset?token=nope", ""},
		{"wrong bearer", "/admin/reset", "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", w.Code)
			}
		})
	}
}

func TestReset_ClearsCache(t *testing.T) {
	srv, s := setupServer(t, permissions.Static{Shield: true})
	ctx := context.Background()
	_ = s.Set(ctx, map[string]any{study.AllowedToEnrollKey: false})

	for _, useHeader := range []bool{true, false} {
		target := "/admin/reset"
		if !useHeader {
			target += "?token=" + srv.Token()
		}
		req := httptest.NewRequest(http.MethodPost, target, nil)
		if useHeader {
			req.Header.Set("Authorization", "Bearer "+srv.Token())
		}
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", w.Code)
		}
		if _, ok, _ := s.Get(ctx, study.AllowedToEnrollKey); ok {
			t.Error("expected cached decision to be removed")
		}
	}
}
