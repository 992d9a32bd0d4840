package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/therealadik/card-management/internal/models"
)

var ErrCardNotFound = errors.New("карта не найдена")

// CardFilter — необязательные условия выборки карт.
type CardFilter struct {
	Status *models.CardStatus
	UserID *int64
}

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Card, error)
	ExistsByEncryptedNumber(ctx context.Context, encrypted string) (bool, error)
	ExistsByIDAndUser(ctx context.Context, id, userID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status models.CardStatus) error
	UpdateLimits(ctx context.Context, id int64, daily, monthly decimal.Decimal) error
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CardFilter, page PageRequest) ([]*models.Card, int64, error)
}

type CardRepositoryPgx struct {
	pool *pgxpool.Pool
}

func NewCardRepository(pool *pgxpool.Pool) CardRepository {
	return &CardRepositoryPgx{pool: pool}
}

const cardColumns = `id, encrypted_card_number, user_id, expiration_date, status, balance, daily_limit, monthly_limit, created_at`

func scanCard(row pgx.Row) (*models.Card, error) {
	card := &models.Card{}
	err := row.Scan(&card.ID, &card.EncryptedCardNumber, &card.UserID, &card.ExpirationDate,
		&card.Status, &card.Balance, &card.DailyLimit, &card.MonthlyLimit, &card.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (r *CardRepositoryPgx) Create(ctx context.Context, card *models.Card) error {
	err := queryEngine(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO cards (encrypted_card_number, user_id, expiration_date, status, balance, daily_limit, monthly_limit)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		card.EncryptedCardNumber, card.UserID, card.ExpirationDate,
		card.Status, card.Balance, card.DailyLimit, card.MonthlyLimit).
		Scan(&card.ID, &card.CreatedAt)
	if err != nil {
		return fmt.Errorf("не удалось сохранить карту: %w", err)
	}
	return nil
}

func (r *CardRepositoryPgx) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	return scanCard(queryEngine(ctx, r.pool).QueryRow(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = $1`, id))
}

// GetByIDForUpdate блокирует строку карты до конца текущей транзакции.
// Сериализует конкурентные снятия и переводы по одной карте.
func (r *CardRepositoryPgx) GetByIDForUpdate(ctx context.Context, id int64) (*models.Card, error) {
	return scanCard(queryEngine(ctx, r.pool).QueryRow(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = $1 FOR UPDATE`, id))
}

func (r *CardRepositoryPgx) ExistsByEncryptedNumber(ctx context.Context, encrypted string) (bool, error) {
	var exists bool
	err := queryEngine(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM cards WHERE encrypted_card_number = $1)`,
		encrypted).Scan(&exists)
	return exists, err
}

func (r *CardRepositoryPgx) ExistsByIDAndUser(ctx context.Context, id, userID int64) (bool, error) {
	var exists bool
	err := queryEngine(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM cards WHERE id = $1 AND user_id = $2)`,
		id, userID).Scan(&exists)
	return exists, err
}

func (r *CardRepositoryPgx) UpdateStatus(ctx context.Context, id int64, status models.CardStatus) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx,
		`UPDATE cards SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("не удалось обновить статус карты: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *CardRepositoryPgx) UpdateLimits(ctx context.Context, id int64, daily, monthly decimal.Decimal) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx,
		`UPDATE cards SET daily_limit = $2, monthly_limit = $3 WHERE id = $1`,
		id, daily, monthly)
	if err != nil {
		return fmt.Errorf("не удалось обновить лимиты карты: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *CardRepositoryPgx) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx,
		`UPDATE cards SET balance = $2 WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("не удалось обновить баланс карты: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *CardRepositoryPgx) Delete(ctx context.Context, id int64) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx,
		`DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("не удалось удалить карту: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *CardRepositoryPgx) List(ctx context.Context, filter CardFilter, page PageRequest) ([]*models.Card, int64, error) {
	where := ``
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}

	q := queryEngine(ctx, r.pool)

	var total int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM cards WHERE TRUE`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("не удалось посчитать карты: %w", err)
	}

	args = append(args, page.Limit(), page.Offset())
	rows, err := q.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM cards WHERE TRUE%s ORDER BY id LIMIT $%d OFFSET $%d`,
			cardColumns, where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("не удалось получить список карт: %w", err)
	}
	defer rows.Close()

	cards := make([]*models.Card, 0, page.Limit())
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, 0, err
		}
		cards = append(cards, card)
	}
	return cards, total, rows.Err()
}
