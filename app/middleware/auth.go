package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/contactkeeper/contacts-api/app/dto"
	appErrors "github.com/contactkeeper/contacts-api/app/errors"
	"github.com/contactkeeper/contacts-api/app/models"
	"github.com/contactkeeper/contacts-api/app/services"
	"github.com/contactkeeper/contacts-api/app/store"
)

type ctxKey string

const ctxCurrentUser ctxKey = "currentUser"

// BearerAuth validates the Authorization bearer token and resolves its subject
// to an existing user, which is injected into the request context. A token
// whose subject no longer exists is rejected the same way as a bad token.
func BearerAuth(creds *services.CredentialService, storage store.Storage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				writeUnauthorized(w, "missing or invalid authorization header")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			email, err := creds.DecodeToken(tokenStr)
			if err != nil {
				writeUnauthorized(w, "could not validate credentials")
				return
			}

			user, err := storage.Users.GetByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					writeUnauthorized(w, "could not validate credentials")
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
					Error: "error resolving user",
					Code:  string(appErrors.ErrCodeInternal),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error: message,
		Code:  string(appErrors.ErrCodeUnauthorized),
	})
}

// ContextWithUser attaches the authenticated user to the context.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxCurrentUser, user)
}

// CurrentUserFromContext retrieves the user set by BearerAuth.
func CurrentUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(ctxCurrentUser).(*models.User)
	return user, ok
}
