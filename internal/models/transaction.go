package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTransfer   TransactionType = "TRANSFER"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionWithdrawal || t == TransactionTransfer
}

// Transaction — неизменяемая запись о движении средств по карте.
// Перевод между картами порождает две записи: по одной на каждую карту.
type Transaction struct {
	ID          int64
	CardID      int64
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	Timestamp   time.Time
}
