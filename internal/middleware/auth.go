package middleware

import (
	"net/http"

	"github.com/HammerMeetNail/dailycheck/internal/handlers"
	"github.com/HammerMeetNail/dailycheck/internal/services"
)

type AuthMiddleware struct {
	authService services.AuthServiceInterface
}

func NewAuthMiddleware(authService services.AuthServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the session and adds it to the context if valid.
// Does not reject unauthenticated requests. A bearer header wins over the
// cookie.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := handlers.BearerToken(r)
		if token == "" {
			if cookie, err := r.Cookie(handlers.SessionCookieName); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.authService.ValidateSession(r.Context(), token)
		if err != nil {
			// Invalid session, continue without one
			next.ServeHTTP(w, r)
			return
		}

		ctx := handlers.SetSessionInContext(r.Context(), session)
		ctx = handlers.SetTokenInContext(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects unauthenticated requests with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handlers.GetSessionFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
