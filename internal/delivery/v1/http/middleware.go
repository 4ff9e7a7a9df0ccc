package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
)

type contextKey string

const actorContextKey contextKey = "actor"

// ActorMiddleware извлекает действующего пользователя из заголовков
// X-User-Id и X-User-Role, проставляемых шлюзом аутентификации.
// Запросы без заголовков пропускаются дальше: операции чтения публичны,
// операции записи сами потребуют актора.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-Id")
		roleStr := r.Header.Get("X-User-Role")

		if userID == "" || roleStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		role, err := domain.ParseRole(roleStr)
		if err != nil {
			WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), actorContextKey, usecase.Actor{
			UserID: userID,
			Role:   role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actorFromContext возвращает актора запроса или e.ErrMissingActor.
func actorFromContext(ctx context.Context) (usecase.Actor, error) {
	actor, ok := ctx.Value(actorContextKey).(usecase.Actor)
	if !ok {
		return usecase.Actor{}, e.ErrMissingActor
	}

	return actor, nil
}
