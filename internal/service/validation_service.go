package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
)

var (
	ErrCardAccessDenied  = errors.New("нет доступа к данной карте")
	ErrCardNotActive     = errors.New("карта не активна")
	ErrInsufficientFunds = errors.New("недостаточно средств на карте")
	ErrNonPositiveAmount = errors.New("сумма операции должна быть положительной")
)

// CardValidationService — проверки перед операциями движения средств:
// существование карты, принадлежность вызывающему, активность, достаточность средств.
type CardValidationService struct {
	cardRepo repository.CardRepository
}

func NewCardValidationService(cardRepo repository.CardRepository) *CardValidationService {
	return &CardValidationService{cardRepo: cardRepo}
}

func (s *CardValidationService) FindCard(ctx context.Context, cardID int64) (*models.Card, error) {
	return s.cardRepo.GetByID(ctx, cardID)
}

// FindCardForUpdate загружает карту под блокировкой строки.
// Вызывается только внутри транзакции.
func (s *CardValidationService) FindCardForUpdate(ctx context.Context, cardID int64) (*models.Card, error) {
	return s.cardRepo.GetByIDForUpdate(ctx, cardID)
}

func (s *CardValidationService) RequireOwnership(card *models.Card, callerID int64) error {
	if card.UserID != callerID {
		return ErrCardAccessDenied
	}
	return nil
}

func (s *CardValidationService) RequireActive(card *models.Card) error {
	if card.Status != models.CardStatusActive {
		return ErrCardNotActive
	}
	return nil
}

func (s *CardValidationService) RequireSufficientFunds(card *models.Card, amount decimal.Decimal) error {
	if card.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

func (s *CardValidationService) RequirePositiveAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}
	return nil
}
