package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/minefield/internal/model"
)

const ownerContextKey = contextKey("owner")

// ownerCookieMaxAge keeps the owner cookie for a week
const ownerCookieMaxAge = 7 * 24 * 60 * 60

// Authorizer checks owner tokens
type Authorizer interface {
	Authorize(ctx context.Context, gameID model.GameID, token string) error
}

// OwnerCookieName is the cookie carrying the owner token for a game
func OwnerCookieName(gameID model.GameID) string {
	return "mf_" + string(gameID)
}

// SetOwnerCookie stores the owner token for a game in the browser
func SetOwnerCookie(w http.ResponseWriter, gameID model.GameID, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     OwnerCookieName(gameID),
		Value:    token,
		Path:     "/",
		MaxAge:   ownerCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearOwnerCookie removes the owner token for a game
func ClearOwnerCookie(w http.ResponseWriter, gameID model.GameID) {
	http.SetCookie(w, &http.Cookie{
		Name:     OwnerCookieName(gameID),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// IsOwner reports whether the request carried a valid owner cookie
func IsOwner(ctx context.Context) bool {
	owner, _ := ctx.Value(ownerContextKey).(bool)
	return owner
}

// Owner returns middleware that checks the owner cookie of the game in the
// {id} route variable. Requests without one are let through as spectators.
func Owner(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gameID := model.GameID(mux.Vars(r)["id"])
			owner := false
			if cookie, err := r.Cookie(OwnerCookieName(gameID)); err == nil && cookie.Value != "" {
				owner = authorizer.Authorize(r.Context(), gameID, cookie.Value) == nil
			}

			ctx := context.WithValue(r.Context(), ownerContextKey, owner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
