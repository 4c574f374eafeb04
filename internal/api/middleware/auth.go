package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/minefield/internal/api/apierr"
	"github.com/mcoot/minefield/internal/model"
)

type contextKey string

const tokenContextKey contextKey = "token"

// Authorizer checks owner tokens
type Authorizer interface {
	Authorize(ctx context.Context, gameID model.GameID, token string) error
}

// OwnerToken rejects requests that do not carry the owner token of the game in the {id} route variable
func OwnerToken(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			gameID := model.GameID(mux.Vars(r)["id"])
			if err := authorizer.Authorize(r.Context(), gameID, token); err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), tokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken extracts the bearer token from the request
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetToken returns the verified owner token from the request context
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
