package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quizhub/internal/auth"
	"quizhub/internal/domain"
	"quizhub/internal/infra/memory"
)

func testAuthenticator(t *testing.T) (*Authenticator, *auth.Issuer, *memory.RevocationStore) {
	t.Helper()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	store := memory.NewRevocationStore()
	return NewAuthenticator(issuer, store), issuer, store
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{"caller_id": caller.ID, "role": caller.Role})
}

func TestRequireMissingHeader(t *testing.T) {
	gate, _, _ := testAuthenticator(t)

	rec := httptest.NewRecorder()
	gate.Require(okHandler)(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing header, got %d", rec.Code)
	}
}

func TestRequireMalformedToken(t *testing.T) {
	gate, _, _ := testAuthenticator(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	gate.Require(okHandler)(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for malformed token, got %d", rec.Code)
	}
}

func TestRequireWrongSecret(t *testing.T) {
	gate, _, _ := testAuthenticator(t)

	other := auth.NewIssuer("other-secret", time.Hour)
	token, _, err := other.Issue(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.Require(okHandler)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", rec.Code)
	}
}

func TestRequirePassesCaller(t *testing.T) {
	gate, issuer, _ := testAuthenticator(t)

	token, _, err := issuer.Issue(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.Require(okHandler)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if want := `"caller_id":7`; !strings.Contains(body, want) {
		t.Fatalf("expected %s in body, got %s", want, body)
	}
}

func TestRequireRevokedToken(t *testing.T) {
	gate, issuer, store := testAuthenticator(t)

	token, claims, err := issuer.Issue(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if err := store.Revoke(httptest.NewRequest(http.MethodGet, "/", nil).Context(), claims.JTI, time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.Require(okHandler)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", rec.Code)
	}
}

func TestRequireAdminRejectsUser(t *testing.T) {
	gate, issuer, _ := testAuthenticator(t)

	token, _, err := issuer.Issue(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/subjects/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.RequireAdmin(okHandler)(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	gate, issuer, _ := testAuthenticator(t)

	token, _, err := issuer.Issue(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/subjects/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.RequireAdmin(okHandler)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}
