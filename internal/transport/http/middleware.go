package http

import (
	"context"
	"net/http"
	"strings"

	"quizhub/internal/app"
	"quizhub/internal/auth"
)

type contextKey int

const (
	callerKey contextKey = iota
	claimsKey
)

// callerFrom returns the authenticated caller placed by Authenticator.
func callerFrom(ctx context.Context) app.Caller {
	caller, _ := ctx.Value(callerKey).(app.Caller)
	return caller
}

// Authenticator verifies bearer tokens and rejects revoked ones before the
// request reaches a handler.
type Authenticator struct {
	issuer      *auth.Issuer
	revocations app.RevocationStore
}

func NewAuthenticator(issuer *auth.Issuer, revocations app.RevocationStore) *Authenticator {
	return &Authenticator{issuer: issuer, revocations: revocations}
}

// Require wraps a handler so only authenticated requests reach it. A missing
// header is 401, a token that does not even parse is 422, and a valid-looking
// but unverifiable, expired or revoked token is 401.
func (a *Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeMessage(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header || raw == "" {
			writeMessage(w, http.StatusUnauthorized, "authorization header is not a bearer token")
			return
		}

		claims, err := a.issuer.Parse(raw)
		if err != nil {
			writeError(w, err)
			return
		}

		revoked, err := a.revocations.IsRevoked(r.Context(), claims.JTI)
		if err != nil {
			writeError(w, err)
			return
		}
		if revoked {
			writeMessage(w, http.StatusUnauthorized, "token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, app.Caller{ID: claims.UserID, Role: claims.Role})
		ctx = context.WithValue(ctx, claimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

func claimsFrom(ctx context.Context) auth.Claims {
	claims, _ := ctx.Value(claimsKey).(auth.Claims)
	return claims
}

// RequireAdmin stacks an admin-role gate on top of Require.
func (a *Authenticator) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.Require(func(w http.ResponseWriter, r *http.Request) {
		if !callerFrom(r.Context()).IsAdmin() {
			writeMessage(w, http.StatusForbidden, "admin role required")
			return
		}
		next(w, r)
	})
}
