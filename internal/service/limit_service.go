package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
)

var (
	ErrDailyLimitExceeded   = errors.New("превышен дневной лимит снятия наличных")
	ErrMonthlyLimitExceeded = errors.New("превышен месячный лимит снятия наличных")
)

// LimitService проверяет, не превысит ли снятие наличных дневной или месячный
// потолок карты. Суммы считаются по транзакциям типа WITHDRAWAL в календарных
// окнах, содержащих момент "сейчас". Нулевой лимит (значение по умолчанию)
// запрещает любое снятие, пока администратор его не поднимет.
type LimitService struct {
	transactionRepo repository.TransactionRepository
}

func NewLimitService(transactionRepo repository.TransactionRepository) *LimitService {
	return &LimitService{transactionRepo: transactionRepo}
}

// dayWindow возвращает границы календарного дня, содержащего момент now:
// от полуночи включительно до последней наносекунды перед следующей полуночью.
func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// monthWindow возвращает границы календарного месяца, содержащего момент now.
func monthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// CheckWithdrawal отклоняет снятие amount с карты, если сумма снятий за день
// или за месяц вместе с amount превысит соответствующий лимит.
func (s *LimitService) CheckWithdrawal(ctx context.Context, card *models.Card, amount decimal.Decimal, now time.Time) error {
	startOfDay, endOfDay := dayWindow(now)
	dailySpent, err := s.transactionRepo.WithdrawalSum(ctx, card.ID, startOfDay, endOfDay)
	if err != nil {
		return err
	}
	if dailySpent.Add(amount).GreaterThan(card.DailyLimit) {
		return ErrDailyLimitExceeded
	}

	startOfMonth, endOfMonth := monthWindow(now)
	monthlySpent, err := s.transactionRepo.WithdrawalSum(ctx, card.ID, startOfMonth, endOfMonth)
	if err != nil {
		return err
	}
	if monthlySpent.Add(amount).GreaterThan(card.MonthlyLimit) {
		return ErrMonthlyLimitExceeded
	}

	return nil
}
