package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"ptcoach/backend/internal/domain"
)

// Actor is the authenticated caller: a customer or a coach. The engine
// trusts the token's identity claim; ownership checks happen against it.
type Actor struct {
	ID   string
	Role domain.ActorRole
}

type actorContextKey struct{}

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate verifies the bearer token and stores the Actor in the
// request context. Tokens are minted by the identity collaborator; only
// HMAC-signed tokens are accepted.
func Authenticate(secret string, log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "bearer token is required")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			claims := &authClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
				}
				return []byte(secret), nil
			})
			if err != nil {
				log.Debug("token rejected", slog.Any("err", err))
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			role := domain.ActorRole(claims.Role)
			if claims.Subject == "" || (role != domain.RoleCustomer && role != domain.RoleCoach) {
				writeJSONError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			actor := Actor{ID: claims.Subject, Role: role}
			ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func actorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
