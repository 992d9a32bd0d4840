package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/therealadik/card-management/internal/models"
)

var (
	ErrUserNotFound = errors.New("пользователь не найден")
	ErrEmailTaken   = errors.New("пользователь с таким email уже существует")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type UserRepositoryPgx struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryPgx{pool: pool}
}

func (r *UserRepositoryPgx) Create(ctx context.Context, user *models.User) (int64, error) {
	var id int64

	err := queryEngine(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO users (email, password_hash, role)
         VALUES ($1, $2, $3)
         RETURNING id`,
		user.Email, user.Password, user.Role).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("не удалось сохранить пользователя: %w", err)
	}

	return id, nil
}

func (r *UserRepositoryPgx) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}

	err := queryEngine(ctx, r.pool).QueryRow(ctx,
		`SELECT id, email, password_hash, role, created_at
         FROM users
         WHERE email = $1`,
		email).Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryPgx) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}

	err := queryEngine(ctx, r.pool).QueryRow(ctx,
		`SELECT id, email, password_hash, role, created_at
         FROM users
         WHERE id = $1`,
		id).Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryPgx) Delete(ctx context.Context, id int64) error {
	tag, err := queryEngine(ctx, r.pool).Exec(ctx,
		`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("не удалось удалить пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
