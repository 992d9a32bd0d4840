package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/therealadik/card-management/internal/models"
)

type testEnv struct {
	cards              *fakeCardRepo
	transactions       *fakeTransactionRepo
	users              *fakeUserRepo
	encryption         *EncryptionService
	cardService        *CardService
	transferService    *TransferService
	transactionService *TransactionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	encryption, err := NewEncryptionService("0123456789abcdef")
	require.NoError(t, err)

	cards := newFakeCardRepo()
	transactions := newFakeTransactionRepo(cards)
	users := newFakeUserRepo()
	txManager := &fakeTxManager{}
	validation := NewCardValidationService(cards)
	limits := NewLimitService(transactions)

	return &testEnv{
		cards:              cards,
		transactions:       transactions,
		users:              users,
		encryption:         encryption,
		cardService:        NewCardService(cards, transactions, users, encryption, validation, limits, txManager, logger),
		transferService:    NewTransferService(cards, transactions, validation, txManager, logger),
		transactionService: NewTransactionService(transactions, cards),
	}
}

func (e *testEnv) newUser(t *testing.T) int64 {
	t.Helper()
	id, err := e.users.Create(context.Background(), &models.User{
		Email:    fmt.Sprintf("user%d@bank.ru", e.users.nextID+1),
		Password: "hash",
		Role:     models.RoleUser,
	})
	require.NoError(t, err)
	return id
}

// newCard выпускает карту через сервис и выставляет баланс и лимиты напрямую.
func (e *testEnv) newCard(t *testing.T, userID int64, balance, daily, monthly string) int64 {
	t.Helper()
	ctx := context.Background()

	resp, err := e.cardService.CreateCard(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, e.cards.UpdateBalance(ctx, resp.ID, decimal.RequireFromString(balance)))
	require.NoError(t, e.cards.UpdateLimits(ctx, resp.ID,
		decimal.RequireFromString(daily), decimal.RequireFromString(monthly)))
	return resp.ID
}

func (e *testEnv) cardState(t *testing.T, cardID int64) *models.Card {
	t.Helper()
	card, err := e.cards.GetByID(context.Background(), cardID)
	require.NoError(t, err)
	return card
}
