package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/therealadik/card-management/internal/models"
)

// TransactionFilter — необязательные условия выборки транзакций.
// UserID ограничивает выборку картами указанного владельца.
type TransactionFilter struct {
	Type   *models.TransactionType
	CardID *int64
	UserID *int64
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	// WithdrawalSum возвращает сумму снятий по карте в интервале [from, to];
	// при отсутствии записей — ноль.
	WithdrawalSum(ctx context.Context, cardID int64, from, to time.Time) (decimal.Decimal, error)
	List(ctx context.Context, filter TransactionFilter, page PageRequest) ([]*models.Transaction, int64, error)
	DeleteByCardID(ctx context.Context, cardID int64) error
}

type TransactionRepositoryPgx struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &TransactionRepositoryPgx{pool: pool}
}

func (r *TransactionRepositoryPgx) Create(ctx context.Context, transaction *models.Transaction) error {
	err := queryEngine(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO transactions (card_id, type, amount, description, timestamp)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id`,
		transaction.CardID, transaction.Type, transaction.Amount,
		transaction.Description, transaction.Timestamp).
		Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("не удалось сохранить транзакцию: %w", err)
	}
	return nil
}

func (r *TransactionRepositoryPgx) WithdrawalSum(ctx context.Context, cardID int64, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := queryEngine(ctx, r.pool).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
         FROM transactions
         WHERE card_id = $1 AND type = $2 AND timestamp BETWEEN $3 AND $4`,
		cardID, models.TransactionWithdrawal, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("не удалось посчитать сумму снятий: %w", err)
	}
	return sum, nil
}

func (r *TransactionRepositoryPgx) List(ctx context.Context, filter TransactionFilter, page PageRequest) ([]*models.Transaction, int64, error) {
	where := ``
	args := []any{}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		where += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	if filter.CardID != nil {
		args = append(args, *filter.CardID)
		where += fmt.Sprintf(" AND t.card_id = $%d", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(" AND c.user_id = $%d", len(args))
	}

	q := queryEngine(ctx, r.pool)

	var total int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions t JOIN cards c ON c.id = t.card_id WHERE TRUE`+where,
		args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("не удалось посчитать транзакции: %w", err)
	}

	args = append(args, page.Limit(), page.Offset())
	rows, err := q.Query(ctx,
		fmt.Sprintf(`SELECT t.id, t.card_id, t.type, t.amount, t.description, t.timestamp
             FROM transactions t JOIN cards c ON c.id = t.card_id
             WHERE TRUE%s ORDER BY t.id DESC LIMIT $%d OFFSET $%d`,
			where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("не удалось получить список транзакций: %w", err)
	}
	defer rows.Close()

	transactions := make([]*models.Transaction, 0, page.Limit())
	for rows.Next() {
		t := &models.Transaction{}
		if err := rows.Scan(&t.ID, &t.CardID, &t.Type, &t.Amount, &t.Description, &t.Timestamp); err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}
	return transactions, total, rows.Err()
}

func (r *TransactionRepositoryPgx) DeleteByCardID(ctx context.Context, cardID int64) error {
	_, err := queryEngine(ctx, r.pool).Exec(ctx,
		`DELETE FROM transactions WHERE card_id = $1`, cardID)
	if err != nil {
		return fmt.Errorf("не удалось удалить транзакции карты: %w", err)
	}
	return nil
}
