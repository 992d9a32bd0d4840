package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/therealadik/card-management/internal/config"
	"github.com/therealadik/card-management/internal/dto"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("неверные учетные данные")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (string, error)
	ParseToken(tokenString string) (int64, models.UserRole, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.jwtCfg.ExpiresIn).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken возвращает идентификатор и роль вызывающего из токена.
// Некорректный principal — нарушение контракта слоя аутентификации,
// а не пользовательская ошибка.
func (s *authService) ParseToken(tokenString string) (int64, models.UserRole, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("неожиданный метод подписи токена")
		}
		return []byte(s.jwtCfg.Secret), nil
	})

	if err != nil {
		return 0, "", err
	}

	if !token.Valid {
		return 0, "", errors.New("невалидный токен")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("невалидные claims")
	}

	userID, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", errors.New("невалидный ID пользователя")
	}

	roleRaw, ok := claims["role"].(string)
	if !ok {
		return 0, "", errors.New("невалидная роль пользователя")
	}
	role := models.UserRole(roleRaw)
	if role != models.RoleAdmin && role != models.RoleUser {
		return 0, "", errors.New("неизвестная роль пользователя")
	}

	return int64(userID), role, nil
}
