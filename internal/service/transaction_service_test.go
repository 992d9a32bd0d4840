package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
)

func TestListTransactionsFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.newUser(t)
	first := env.newCard(t, userID, "1000", "500", "1500")
	second := env.newCard(t, userID, "1000", "500", "1500")

	require.NoError(t, env.cardService.CashWithdraw(ctx, first, userID, decimal.NewFromInt(100), ""))
	require.NoError(t, env.transferService.TransferBetweenCards(ctx, userID, first, second, decimal.NewFromInt(50)))

	page, err := env.transactionService.ListTransactions(ctx, nil, nil, repository.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)

	withdrawal := models.TransactionWithdrawal
	page, err = env.transactionService.ListTransactions(ctx, &withdrawal, nil, repository.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, string(models.TransactionWithdrawal), page.Content[0].Type)

	transfer := models.TransactionTransfer
	page, err = env.transactionService.ListTransactions(ctx, &transfer, &second, repository.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, second, page.Content[0].CardID)
}

func TestListOwnTransactionsScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t)
	stranger := env.newUser(t)
	ownCard := env.newCard(t, owner, "1000", "500", "1500")
	foreignCard := env.newCard(t, stranger, "1000", "500", "1500")

	require.NoError(t, env.cardService.CashWithdraw(ctx, ownCard, owner, decimal.NewFromInt(100), ""))
	require.NoError(t, env.cardService.CashWithdraw(ctx, foreignCard, stranger, decimal.NewFromInt(100), ""))

	// Без фильтра по карте видны только свои транзакции.
	page, err := env.transactionService.ListOwnTransactions(ctx, owner, nil, nil, repository.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, ownCard, page.Content[0].CardID)

	// Чужая карта в фильтре — отказ в доступе.
	_, err = env.transactionService.ListOwnTransactions(ctx, owner, nil, &foreignCard, repository.PageRequest{Size: 10})
	assert.ErrorIs(t, err, ErrCardAccessDenied)
}

func TestListTransactionsPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.newUser(t)
	cardID := env.newCard(t, userID, "1000", "1000", "1000")

	for i := 0; i < 5; i++ {
		require.NoError(t, env.cardService.CashWithdraw(ctx, cardID, userID, decimal.NewFromInt(10), ""))
	}

	page, err := env.transactionService.ListTransactions(ctx, nil, nil, repository.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Size)
}
