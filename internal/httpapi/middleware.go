package httpapi

import (
	"context"
	"net/http"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/domain"
	"github.com/google/uuid"
)

// SessionMiddleware assigns every request a session id. Clients that do not
// send X-Session-ID get a fresh one minted and echoed back.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get("X-Session-ID")
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), "session_id", sessionID)
		w.Header().Set("X-Session-ID", sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityMiddleware resolves the shopper identity from the X-User-ID
// header. No header means an anonymous guest. In production the header is
// set by the auth proxy in front of this service.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := domain.IdentityGuest
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			identity = domain.Identity(userID)
		}

		ctx := context.WithValue(r.Context(), "identity", identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value("session_id").(string); ok {
		return sessionID
	}
	return ""
}

func identityFromContext(ctx context.Context) domain.Identity {
	if identity, ok := ctx.Value("identity").(domain.Identity); ok {
		return identity
	}
	return domain.IdentityGuest
}
