package service

import (
	"context"

	"github.com/therealadik/card-management/internal/dto"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
)

// TransactionService — чтение истории транзакций с фильтрами и пагинацией.
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	cardRepo        repository.CardRepository
}

func NewTransactionService(transactionRepo repository.TransactionRepository, cardRepo repository.CardRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		cardRepo:        cardRepo,
	}
}

// ListTransactions возвращает страницу транзакций по необязательным фильтрам
// типа и карты.
func (s *TransactionService) ListTransactions(ctx context.Context, transactionType *models.TransactionType, cardID *int64, page repository.PageRequest) (dto.TransactionPageResponse, error) {
	return s.list(ctx, repository.TransactionFilter{Type: transactionType, CardID: cardID}, page)
}

// ListOwnTransactions возвращает транзакции по картам вызывающего.
// Запрос чужой карты отклоняется.
func (s *TransactionService) ListOwnTransactions(ctx context.Context, callerID int64, transactionType *models.TransactionType, cardID *int64, page repository.PageRequest) (dto.TransactionPageResponse, error) {
	filter := repository.TransactionFilter{Type: transactionType}
	if cardID != nil {
		isOwn, err := s.cardRepo.ExistsByIDAndUser(ctx, *cardID, callerID)
		if err != nil {
			return dto.TransactionPageResponse{}, err
		}
		if !isOwn {
			return dto.TransactionPageResponse{}, ErrCardAccessDenied
		}
		filter.CardID = cardID
	} else {
		filter.UserID = &callerID
	}
	return s.list(ctx, filter, page)
}

func (s *TransactionService) list(ctx context.Context, filter repository.TransactionFilter, page repository.PageRequest) (dto.TransactionPageResponse, error) {
	transactions, total, err := s.transactionRepo.List(ctx, filter, page)
	if err != nil {
		return dto.TransactionPageResponse{}, err
	}

	content := make([]dto.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		content = append(content, dto.TransactionResponse{
			ID:          t.ID,
			CardID:      t.CardID,
			Type:        string(t.Type),
			Amount:      t.Amount,
			Description: t.Description,
			Timestamp:   t.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return dto.TransactionPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Limit(),
		TotalElements: total,
		TotalPages:    totalPages(total, page.Limit()),
	}, nil
}
