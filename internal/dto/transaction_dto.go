package dto

import (
	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	ID          int64           `json:"id"`
	CardID      int64           `json:"card_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   string          `json:"timestamp"`
}

type TransactionPageResponse struct {
	Content       []TransactionResponse `json:"content"`
	Page          int                   `json:"page"`
	Size          int                   `json:"size"`
	TotalElements int64                 `json:"total_elements"`
	TotalPages    int                   `json:"total_pages"`
}
