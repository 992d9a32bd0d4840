package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/therealadik/card-management/internal/dto"
	"github.com/therealadik/card-management/internal/middleware"
	"github.com/therealadik/card-management/internal/repository"
	"github.com/therealadik/card-management/internal/service"
)

type CardHandler struct {
	cardService     *service.CardService
	transferService *service.TransferService
	logger          *logrus.Logger
}

func NewCardHandler(cardService *service.CardService, transferService *service.TransferService, logger *logrus.Logger) *CardHandler {
	return &CardHandler{
		cardService:     cardService,
		transferService: transferService,
		logger:          logger,
	}
}

func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if req.UserID < 1 {
		http.Error(w, "Не указан пользователь", http.StatusBadRequest)
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), req.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, card)
}

func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), cardID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CardHandler) BlockCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cardService.BlockCard(r.Context(), cardID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Карта заблокирована"})
}

func (h *CardHandler) BlockOwnCard(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserID(r.Context())
	if err != nil {
		http.Error(w, "Ошибка авторизации", http.StatusUnauthorized)
		return
	}

	cardID, err := pathID(r, "cardId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cardService.BlockOwnCard(r.Context(), cardID, callerID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Карта заблокирована"})
}

func (h *CardHandler) ActivateCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cardService.ActivateCard(r.Context(), cardID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Карта активирована"})
}

func (h *CardHandler) SetCardLimits(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req dto.CardLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.cardService.SetLimits(r.Context(), cardID, req.DailyLimit, req.MonthlyLimit); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Лимиты обновлены"})
}

func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	status, err := optionalCardStatus(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	userID, err := optionalInt64(r, "user_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.cardService.ListCards(r.Context(), repository.CardFilter{Status: status, UserID: userID}, pageRequest(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, page)
}

func (h *CardHandler) GetOwnCards(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserID(r.Context())
	if err != nil {
		http.Error(w, "Ошибка авторизации", http.StatusUnauthorized)
		return
	}

	status, err := optionalCardStatus(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.cardService.ListOwnCards(r.Context(), callerID, status, pageRequest(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, page)
}

func (h *CardHandler) CashWithdraw(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserID(r.Context())
	if err != nil {
		http.Error(w, "Ошибка авторизации", http.StatusUnauthorized)
		return
	}

	cardID, err := pathID(r, "cardId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.cardService.CashWithdraw(r.Context(), cardID, callerID, req.Amount, req.Description); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Снятие наличных выполнено"})
}

func (h *CardHandler) TransferBetweenCards(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserID(r.Context())
	if err != nil {
		http.Error(w, "Ошибка авторизации", http.StatusUnauthorized)
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.transferService.TransferBetweenCards(r.Context(), callerID, req.SourceCardID, req.DestinationCardID, req.Amount); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Перевод выполнен"})
}
