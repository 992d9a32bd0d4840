package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/therealadik/card-management/internal/dto"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnknownRole = errors.New("неизвестная роль пользователя")

// UserService — справочник владельцев карт: регистрация и удаление
// администратором.
type UserService struct {
	userRepo repository.UserRepository
	logger   *logrus.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error) {
	role := models.UserRole(req.Role)
	if role != models.RoleAdmin && role != models.RoleUser {
		return dto.UserResponse{}, ErrUnknownRole
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Infof("Зарегистрирован пользователь %s", req.Email)

	return dto.UserResponse{
		ID:    id,
		Email: req.Email,
		Role:  string(role),
	}, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infof("Пользователь %d удалён", id)
	return nil
}
