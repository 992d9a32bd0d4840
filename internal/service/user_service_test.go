package service

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealadik/card-management/internal/dto"
	"github.com/therealadik/card-management/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() (*UserService, *fakeUserRepo) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	users := newFakeUserRepo()
	return NewUserService(users, logger), users
}

func TestCreateUser(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	resp, err := svc.CreateUser(ctx, dto.CreateUserRequest{Email: "user@bank.ru", Password: "password", Role: "USER"})
	require.NoError(t, err)
	assert.Equal(t, "user@bank.ru", resp.Email)
	assert.Equal(t, "USER", resp.Role)

	// Пароль хранится только в виде bcrypt-хеша.
	stored, err := users.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password")))

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{Email: "user@bank.ru", Password: "other", Role: "USER"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{Email: "x@bank.ru", Password: "p", Role: "SUPERUSER"})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	resp, err := svc.CreateUser(ctx, dto.CreateUserRequest{Email: "user@bank.ru", Password: "password", Role: "USER"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, resp.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, resp.ID), repository.ErrUserNotFound)
}
