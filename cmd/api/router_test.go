package main

import (
	"io"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealadik/card-management/internal/handler"
	"github.com/therealadik/card-management/internal/middleware"
)

// Маршруты повторяют пути исходных контроллеров: всё лежит под
// /card-management, включая логин и управление пользователями.
func TestRouterPaths(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := newRouter(
		handler.NewCardHandler(nil, nil, logger),
		handler.NewTransactionHandler(nil, logger),
		handler.NewUserHandler(nil, nil, logger),
		middleware.NewJWTMiddleware(nil, logger),
	)

	registered := map[string]bool{}
	err := r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		template, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		for _, method := range methods {
			registered[method+" "+template] = true
		}
		return nil
	})
	require.NoError(t, err)

	expected := []string{
		"POST /card-management/auth/login",
		"POST /card-management/create-card",
		"DELETE /card-management/delete-card/{cardId}",
		"PATCH /card-management/block-card/{cardId}",
		"PATCH /card-management/activate-card/{cardId}",
		"PATCH /card-management/set-card-limits/{cardId}",
		"GET /card-management/get-cards",
		"GET /card-management/get-transactions",
		"POST /card-management/create-user",
		"DELETE /card-management/delete-user/{userId}",
		"GET /card-management/get-my-cards",
		"PATCH /card-management/block-my-card/{cardId}",
		"POST /card-management/cash-withdraw/{cardId}",
		"POST /card-management/transfer-between-cards",
		"GET /card-management/get-my-transactions",
	}
	for _, route := range expected {
		assert.Contains(t, registered, route)
	}
	assert.Len(t, registered, len(expected))
}
