package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/shreyas-k21/passvault/internal/session"
	"github.com/shreyas-k21/passvault/internal/utils"
)

type contextKey string

const identityKey contextKey = "identity"

// SessionCookie carries the opaque session token. The cookie value is only
// meaningful to the server-side session store.
const SessionCookie = "sessionId"

// Auth gates every protected route: no valid, unexpired session record means
// the request never reaches a handler.
func Auth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
					Success: false,
					Message: "Not authenticated",
					Code:    utils.CodeUnauthenticated,
				})
				return
			}

			identity, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
						Success: false,
						Message: "Not authenticated",
						Code:    utils.CodeUnauthenticated,
					})
					return
				}
				utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
					Success: false,
					Message: "Failed to resolve session",
					Code:    utils.CodeServerError,
				})
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated identity attached by Auth.
func IdentityFromContext(ctx context.Context) (*session.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*session.Identity)
	return identity, ok
}
