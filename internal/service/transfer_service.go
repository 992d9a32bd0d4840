package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
)

var ErrSameCard = errors.New("нельзя переводить деньги на ту же карту")

// TransferService выполняет переводы между картами одного пользователя.
// Перевод порождает две транзакции: списание на карте-источнике и зачисление
// на карте-получателе. Лимиты снятия к переводам не применяются.
type TransferService struct {
	cardRepo        repository.CardRepository
	transactionRepo repository.TransactionRepository
	validation      *CardValidationService
	txManager       repository.TxManager
	logger          *logrus.Logger
}

func NewTransferService(
	cardRepo repository.CardRepository,
	transactionRepo repository.TransactionRepository,
	validation *CardValidationService,
	txManager repository.TxManager,
	logger *logrus.Logger,
) *TransferService {
	return &TransferService{
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
		validation:      validation,
		txManager:       txManager,
		logger:          logger,
	}
}

// TransferBetweenCards атомарно переносит amount с карты-источника на
// карту-получателя. Обе карты блокируются в порядке возрастания ID,
// чтобы встречные переводы не взаимоблокировались.
func (s *TransferService) TransferBetweenCards(ctx context.Context, callerID, sourceCardID, destinationCardID int64, amount decimal.Decimal) error {
	if err := s.validation.RequirePositiveAmount(amount); err != nil {
		return err
	}
	if sourceCardID == destinationCardID {
		return ErrSameCard
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		firstID, secondID := sourceCardID, destinationCardID
		if firstID > secondID {
			firstID, secondID = secondID, firstID
		}

		first, err := s.validation.FindCardForUpdate(ctx, firstID)
		if err != nil {
			return err
		}
		second, err := s.validation.FindCardForUpdate(ctx, secondID)
		if err != nil {
			return err
		}

		source, destination := first, second
		if source.ID != sourceCardID {
			source, destination = second, first
		}

		if err := s.validation.RequireOwnership(source, callerID); err != nil {
			return err
		}
		if err := s.validation.RequireOwnership(destination, callerID); err != nil {
			return err
		}
		if err := s.validation.RequireActive(source); err != nil {
			return err
		}
		if err := s.validation.RequireActive(destination); err != nil {
			return err
		}
		if err := s.validation.RequireSufficientFunds(source, amount); err != nil {
			return err
		}

		if err := s.cardRepo.UpdateBalance(ctx, source.ID, source.Balance.Sub(amount)); err != nil {
			return err
		}
		if err := s.cardRepo.UpdateBalance(ctx, destination.ID, destination.Balance.Add(amount)); err != nil {
			return err
		}

		now := time.Now()
		if err := s.transactionRepo.Create(ctx, &models.Transaction{
			CardID:      source.ID,
			Type:        models.TransactionTransfer,
			Amount:      amount,
			Description: fmt.Sprintf("Перевод на карту ID %d", destination.ID),
			Timestamp:   now,
		}); err != nil {
			return err
		}
		return s.transactionRepo.Create(ctx, &models.Transaction{
			CardID:      destination.ID,
			Type:        models.TransactionTransfer,
			Amount:      amount,
			Description: fmt.Sprintf("Получение перевода с карты ID %d", source.ID),
			Timestamp:   now,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Infof("Перевод %s с карты %d на карту %d выполнен", amount.String(), sourceCardID, destinationCardID)
	return nil
}
