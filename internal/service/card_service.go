package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/therealadik/card-management/internal/dto"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
)

var ErrNoLimitsSpecified = errors.New("не указано ни одного лимита")

// CardService владеет жизненным циклом карт и снятием наличных.
// Каждая операция изменения выполняется в одной транзакции БД;
// операции движения средств берут блокировку строки карты.
type CardService struct {
	cardRepo        repository.CardRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
	encryption      *EncryptionService
	validation      *CardValidationService
	limits          *LimitService
	txManager       repository.TxManager
	logger          *logrus.Logger
}

func NewCardService(
	cardRepo repository.CardRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	encryption *EncryptionService,
	validation *CardValidationService,
	limits *LimitService,
	txManager repository.TxManager,
	logger *logrus.Logger,
) *CardService {
	return &CardService{
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		encryption:      encryption,
		validation:      validation,
		limits:          limits,
		txManager:       txManager,
		logger:          logger,
	}
}

// generateCardNumber возвращает номер вида "4000" + 12 случайных цифр.
func generateCardNumber() (string, error) {
	randomDigits := make([]byte, 12)
	if _, err := rand.Read(randomDigits); err != nil {
		return "", fmt.Errorf("не удалось сгенерировать номер карты: %w", err)
	}

	number := "4000"
	for _, b := range randomDigits {
		number += strconv.Itoa(int(b) % 10)
	}
	return number, nil
}

// maskCardNumber скрывает 8 средних цифр, оставляя первые и последние 4.
func maskCardNumber(number string) string {
	if len(number) != 16 {
		return number
	}
	return number[:4] + "********" + number[12:]
}

func (s *CardService) toCardResponse(card *models.Card) (dto.CardResponse, error) {
	number, err := s.encryption.Decrypt(card.EncryptedCardNumber)
	if err != nil {
		return dto.CardResponse{}, err
	}
	return dto.CardResponse{
		ID:             card.ID,
		MaskedNumber:   maskCardNumber(number),
		ExpirationDate: card.ExpirationDate.Format("2006-01-02"),
		Status:         string(card.Status),
		Balance:        card.Balance,
		UserID:         card.UserID,
	}, nil
}

// CreateCard выпускает новую карту для пользователя. Номер генерируется заново,
// пока зашифрованная форма не окажется уникальной; шифрование детерминированное,
// поэтому совпадение шифротекстов означает совпадение номеров.
func (s *CardService) CreateCard(ctx context.Context, userID int64) (dto.CardResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return dto.CardResponse{}, err
	}

	var rawNumber, encryptedNumber string
	for {
		number, err := generateCardNumber()
		if err != nil {
			return dto.CardResponse{}, err
		}
		encrypted, err := s.encryption.Encrypt(number)
		if err != nil {
			return dto.CardResponse{}, err
		}
		exists, err := s.cardRepo.ExistsByEncryptedNumber(ctx, encrypted)
		if err != nil {
			return dto.CardResponse{}, err
		}
		if !exists {
			rawNumber, encryptedNumber = number, encrypted
			break
		}
	}

	card := &models.Card{
		EncryptedCardNumber: encryptedNumber,
		UserID:              userID,
		ExpirationDate:      time.Now().AddDate(3, 0, 0),
		Status:              models.CardStatusActive,
		Balance:             decimal.Zero,
		DailyLimit:          decimal.Zero,
		MonthlyLimit:        decimal.Zero,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return dto.CardResponse{}, err
	}

	s.logger.Infof("Выпущена карта %d для пользователя %d", card.ID, userID)

	return dto.CardResponse{
		ID:             card.ID,
		MaskedNumber:   maskCardNumber(rawNumber),
		ExpirationDate: card.ExpirationDate.Format("2006-01-02"),
		Status:         string(card.Status),
		Balance:        card.Balance,
		UserID:         card.UserID,
	}, nil
}

// DeleteCard удаляет карту вместе с её транзакциями. Удаление зависимых записей
// выполняется явно в одной транзакции, чтобы каскад был виден и проверяем.
func (s *CardService) DeleteCard(ctx context.Context, cardID int64) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.validation.FindCardForUpdate(ctx, cardID); err != nil {
			return err
		}
		if err := s.transactionRepo.DeleteByCardID(ctx, cardID); err != nil {
			return err
		}
		return s.cardRepo.Delete(ctx, cardID)
	})
	if err != nil {
		return err
	}

	s.logger.Infof("Карта %d удалена вместе с транзакциями", cardID)
	return nil
}

// BlockCard переводит карту ACTIVE -> BLOCKED. Блокировка неактивной карты —
// ошибка, а не no-op.
func (s *CardService) BlockCard(ctx context.Context, cardID int64) error {
	return s.blockCard(ctx, cardID, nil)
}

// BlockOwnCard — то же, что BlockCard, но дополнительно требует,
// чтобы карта принадлежала вызывающему.
func (s *CardService) BlockOwnCard(ctx context.Context, cardID, callerID int64) error {
	return s.blockCard(ctx, cardID, &callerID)
}

func (s *CardService) blockCard(ctx context.Context, cardID int64, callerID *int64) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		card, err := s.validation.FindCardForUpdate(ctx, cardID)
		if err != nil {
			return err
		}
		if callerID != nil {
			if err := s.validation.RequireOwnership(card, *callerID); err != nil {
				return err
			}
		}
		if err := s.validation.RequireActive(card); err != nil {
			return err
		}
		return s.cardRepo.UpdateStatus(ctx, cardID, models.CardStatusBlocked)
	})
	if err != nil {
		return err
	}

	s.logger.Infof("Карта %d заблокирована", cardID)
	return nil
}

// ActivateCard безусловно переводит карту в статус ACTIVE.
// Повторная активация активной карты не является ошибкой.
func (s *CardService) ActivateCard(ctx context.Context, cardID int64) error {
	if err := s.cardRepo.UpdateStatus(ctx, cardID, models.CardStatusActive); err != nil {
		return err
	}
	s.logger.Infof("Карта %d активирована", cardID)
	return nil
}

// SetLimits перезаписывает указанные лимиты карты; отсутствующее значение
// оставляет сохранённый лимит без изменений.
func (s *CardService) SetLimits(ctx context.Context, cardID int64, daily, monthly *decimal.Decimal) error {
	if daily == nil && monthly == nil {
		return ErrNoLimitsSpecified
	}

	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		card, err := s.validation.FindCardForUpdate(ctx, cardID)
		if err != nil {
			return err
		}
		newDaily := card.DailyLimit
		newMonthly := card.MonthlyLimit
		if daily != nil {
			newDaily = *daily
		}
		if monthly != nil {
			newMonthly = *monthly
		}
		return s.cardRepo.UpdateLimits(ctx, cardID, newDaily, newMonthly)
	})
}

// ListCards возвращает страницу карт с фильтрами по статусу и владельцу.
// Номер каждой карты расшифровывается и маскируется на время ответа.
func (s *CardService) ListCards(ctx context.Context, filter repository.CardFilter, page repository.PageRequest) (dto.CardPageResponse, error) {
	cards, total, err := s.cardRepo.List(ctx, filter, page)
	if err != nil {
		return dto.CardPageResponse{}, err
	}

	content := make([]dto.CardResponse, 0, len(cards))
	for _, card := range cards {
		resp, err := s.toCardResponse(card)
		if err != nil {
			return dto.CardPageResponse{}, err
		}
		content = append(content, resp)
	}

	return dto.CardPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Limit(),
		TotalElements: total,
		TotalPages:    totalPages(total, page.Limit()),
	}, nil
}

// ListOwnCards возвращает карты вызывающего с необязательным фильтром по статусу.
func (s *CardService) ListOwnCards(ctx context.Context, callerID int64, status *models.CardStatus, page repository.PageRequest) (dto.CardPageResponse, error) {
	return s.ListCards(ctx, repository.CardFilter{Status: status, UserID: &callerID}, page)
}

// CashWithdraw снимает наличные с карты. Проверки в порядке: владение,
// активность, достаточность средств, дневной и месячный лимиты.
// Всё выполняется под блокировкой строки карты в одной транзакции.
func (s *CardService) CashWithdraw(ctx context.Context, cardID, callerID int64, amount decimal.Decimal, description string) error {
	if err := s.validation.RequirePositiveAmount(amount); err != nil {
		return err
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		card, err := s.validation.FindCardForUpdate(ctx, cardID)
		if err != nil {
			return err
		}
		if err := s.validation.RequireOwnership(card, callerID); err != nil {
			return err
		}
		if err := s.validation.RequireActive(card); err != nil {
			return err
		}
		if err := s.validation.RequireSufficientFunds(card, amount); err != nil {
			return err
		}

		now := time.Now()
		if err := s.limits.CheckWithdrawal(ctx, card, amount, now); err != nil {
			return err
		}

		if err := s.cardRepo.UpdateBalance(ctx, cardID, card.Balance.Sub(amount)); err != nil {
			return err
		}
		return s.transactionRepo.Create(ctx, &models.Transaction{
			CardID:      cardID,
			Type:        models.TransactionWithdrawal,
			Amount:      amount,
			Description: description,
			Timestamp:   now,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Infof("С карты %d снято %s", cardID, amount.String())
	return nil
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
