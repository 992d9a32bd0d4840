package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
)

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("неверный параметр %s", name)
	}
	return id, nil
}

// pageRequest читает параметры page и size; нумерация страниц с нуля,
// размер по умолчанию 10.
func pageRequest(r *http.Request) repository.PageRequest {
	page := repository.PageRequest{Page: 0, Size: 10}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v >= 0 {
		page.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v > 0 {
		page.Size = v
	}
	return page
}

func optionalInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("неверный параметр %s", name)
	}
	return &v, nil
}

func optionalCardStatus(r *http.Request) (*models.CardStatus, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, nil
	}
	status := models.CardStatus(raw)
	if !status.IsValid() {
		return nil, fmt.Errorf("неизвестный статус карты %q", raw)
	}
	return &status, nil
}

func optionalTransactionType(r *http.Request) (*models.TransactionType, error) {
	raw := r.URL.Query().Get("type")
	if raw == "" {
		return nil, nil
	}
	transactionType := models.TransactionType(raw)
	if !transactionType.IsValid() {
		return nil, fmt.Errorf("неизвестный тип транзакции %q", raw)
	}
	return &transactionType, nil
}
