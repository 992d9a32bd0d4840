package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/service"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
)

type JWTMiddleware struct {
	authService service.AuthService
	logger      *logrus.Logger
}

func NewJWTMiddleware(authService service.AuthService, logger *logrus.Logger) *JWTMiddleware {
	return &JWTMiddleware{
		authService: authService,
		logger:      logger,
	}
}

func (m *JWTMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Требуется авторизация", http.StatusUnauthorized)
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			http.Error(w, "Неверный формат токена", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		userID, role, err := m.authService.ParseToken(tokenString)
		if err != nil {
			m.logger.WithError(err).Warn("Ошибка проверки токена")
			http.Error(w, "Неверный или просроченный токен", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, UserRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает запрос дальше только при совпадении роли вызывающего.
func RequireRole(role models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerRole, err := GetUserRole(r.Context())
			if err != nil || callerRole != role {
				http.Error(w, "Доступ запрещен", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetUserID(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	if !ok {
		return 0, errors.New("идентификатор пользователя отсутствует в контексте")
	}
	return userID, nil
}

func GetUserRole(ctx context.Context) (models.UserRole, error) {
	role, ok := ctx.Value(UserRoleKey).(models.UserRole)
	if !ok {
		return "", errors.New("роль пользователя отсутствует в контексте")
	}
	return role, nil
}
