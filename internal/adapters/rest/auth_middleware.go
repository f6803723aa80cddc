package rest

import (
	"net/http"
	"strings"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"
)

// AuthMiddleware validates the Bearer token and stores the claims in the context.
func AuthMiddleware(validate usecases_port.ValidateTokenUseCase) func(next http.Handler) http.Handler {
	return authenticate(validate, true)
}

// OptionalAuthMiddleware lets anonymous requests through but still rejects a
// bad token, so handlers can widen what an authenticated caller may do.
func OptionalAuthMiddleware(validate usecases_port.ValidateTokenUseCase) func(next http.Handler) http.Handler {
	return authenticate(validate, false)
}

func authenticate(validate usecases_port.ValidateTokenUseCase, required bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"middleware": "Auth"})

			header := r.Header.Get("Authorization")
			if header == "" && !required {
				next.ServeHTTP(w, r)
				return
			}
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				WriteJSONError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			claims, err := validate.Execute(r.Context(), strings.TrimSpace(token))
			if err != nil {
				writeUseCaseError(w, logger, err)
				return
			}

			ctx := contextkeys.ContextWithClaims(r.Context(), claims)
			ctx = contextkeys.ContextWithLogger(ctx, contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
				"user_id": claims.UserID,
			}))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated callers without role. It must run after AuthMiddleware.
func RequireRole(role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := contextkeys.ClaimsFromContext(r.Context())
			if !ok {
				WriteJSONError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			if claims.Role != role {
				_, message := statusFor(domain.ErrForbidden)
				WriteJSONError(w, http.StatusForbidden, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
