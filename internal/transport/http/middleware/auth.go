package middleware

import (
	"context"
	"net/http"
	"strings"

	"talenthub/internal/domain/auth"
	"talenthub/internal/requestctx"
)

// Auth parses the bearer token when present and stores the resolved actor
// on the context. Requests without a valid token pass through anonymous;
// RequireUser and the capability checks reject them downstream.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			actor := auth.NewActor(claims.UserID, claims.RoleName)
			next.ServeHTTP(w, r.WithContext(requestctx.WithActor(r.Context(), actor)))
		})
	}
}

func GetActor(ctx context.Context) (auth.Actor, bool) {
	return requestctx.Actor(ctx)
}
