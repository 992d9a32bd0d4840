package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/therealadik/card-management/internal/middleware"
	"github.com/therealadik/card-management/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
	logger             *logrus.Logger
}

func NewTransactionHandler(transactionService *service.TransactionService, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	transactionType, err := optionalTransactionType(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cardID, err := optionalInt64(r, "card_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.transactionService.ListTransactions(r.Context(), transactionType, cardID, pageRequest(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, page)
}

func (h *TransactionHandler) GetOwnTransactions(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserID(r.Context())
	if err != nil {
		http.Error(w, "Ошибка авторизации", http.StatusUnauthorized)
		return
	}

	transactionType, err := optionalTransactionType(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cardID, err := optionalInt64(r, "card_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.transactionService.ListOwnTransactions(r.Context(), callerID, transactionType, cardID, pageRequest(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, page)
}
