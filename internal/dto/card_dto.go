package dto

import (
	"github.com/shopspring/decimal"
)

type CreateCardRequest struct {
	UserID int64 `json:"user_id"`
}

type CardLimitRequest struct {
	DailyLimit   *decimal.Decimal `json:"daily_limit"`
	MonthlyLimit *decimal.Decimal `json:"monthly_limit"`
}

type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type TransferRequest struct {
	SourceCardID      int64           `json:"source_card_id"`
	DestinationCardID int64           `json:"destination_card_id"`
	Amount            decimal.Decimal `json:"amount"`
}

// CardResponse никогда не содержит ни открытый, ни зашифрованный номер карты —
// только маскированную форму.
type CardResponse struct {
	ID             int64           `json:"id"`
	MaskedNumber   string          `json:"masked_number"`
	ExpirationDate string          `json:"expiration_date"`
	Status         string          `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
	UserID         int64           `json:"user_id"`
}

type CardPageResponse struct {
	Content       []CardResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
}
