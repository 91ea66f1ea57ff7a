package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/utils"
)

type contextKey string

const authContextKey contextKey = "authContext"

// Permission names a single capability the API checks before a mutation
type Permission string

const (
	PermViewAssets    Permission = "assets:view"
	PermEditAssets    Permission = "assets:edit"
	PermManageStatus  Permission = "assets:status"
	PermManagePeople  Permission = "people:manage"
	PermManageCatalog Permission = "catalog:manage"
	PermViewReports   Permission = "reports:view"
)

// rolePermissions is the fixed role -> capability mapping
var rolePermissions = map[string][]Permission{
	"admin":  {PermViewAssets, PermEditAssets, PermManageStatus, PermManagePeople, PermManageCatalog, PermViewReports},
	"editor": {PermViewAssets, PermEditAssets, PermManageStatus, PermViewReports},
	"viewer": {PermViewAssets, PermViewReports},
}

// AuthContext is the explicit authorization object handlers receive per
// request: who is calling and what they are allowed to do.
type AuthContext struct {
	UserID      string
	Email       string
	Name        string
	Role        string
	permissions map[Permission]bool
}

// Can reports whether the caller holds the given permission
func (a *AuthContext) Can(p Permission) bool {
	if a == nil {
		return false
	}
	return a.permissions[p]
}

// newAuthContext builds an AuthContext from validated token claims
func newAuthContext(claims map[string]interface{}) *AuthContext {
	ac := &AuthContext{permissions: make(map[Permission]bool)}
	if v, ok := claims["id"].(string); ok {
		ac.UserID = v
	}
	if v, ok := claims["email"].(string); ok {
		ac.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		ac.Name = v
	}
	if v, ok := claims["role"].(string); ok {
		ac.Role = v
	}
	for _, p := range rolePermissions[ac.Role] {
		ac.permissions[p] = true
	}
	return ac
}

// FromRequest returns the AuthContext attached by Auth, or nil
func FromRequest(r *http.Request) *AuthContext {
	ac, _ := r.Context().Value(authContextKey).(*AuthContext)
	return ac
}

// Auth verifies the Bearer token and attaches an AuthContext to the request
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ValidateToken(parts[1], jwtSecret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), authContextKey, newAuthContext(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require wraps a handler so it only runs when the caller holds p
func Require(p Permission, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !FromRequest(r).Can(p) {
			http.Error(w, "Insufficient permissions", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
