package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusBlocked CardStatus = "BLOCKED"
	// CardStatusExpired зарезервирован, автоматический перевод карт
	// в этот статус пока не реализован.
	CardStatusExpired CardStatus = "EXPIRED"
)

// IsValid проверяет, что статус входит в известный словарь.
func (s CardStatus) IsValid() bool {
	switch s {
	case CardStatusActive, CardStatusBlocked, CardStatusExpired:
		return true
	}
	return false
}

type Card struct {
	ID                  int64
	EncryptedCardNumber string
	UserID              int64
	ExpirationDate      time.Time
	Status              CardStatus
	Balance             decimal.Decimal
	DailyLimit          decimal.Decimal
	MonthlyLimit        decimal.Decimal
	CreatedAt           time.Time
}
