package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/therealadik/card-management/internal/repository"
	"github.com/therealadik/card-management/internal/service"
)

// statusFromError переводит типизированные ошибки сервисов в HTTP-статусы.
// Бизнес-ошибки доходят до клиента со своим текстом, внутренние — нет.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrCardNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCardAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrCardNotActive),
		errors.Is(err, repository.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrDailyLimitExceeded),
		errors.Is(err, service.ErrMonthlyLimitExceeded),
		errors.Is(err, service.ErrNoLimitsSpecified),
		errors.Is(err, service.ErrNonPositiveAmount),
		errors.Is(err, service.ErrSameCard),
		errors.Is(err, service.ErrUnknownRole):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("Внутренняя ошибка при обработке запроса")
		http.Error(w, "Внутренняя ошибка сервера", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, logger *logrus.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("Ошибка кодирования ответа")
	}
}
