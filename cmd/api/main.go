package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/therealadik/card-management/internal/config"
	"github.com/therealadik/card-management/internal/handler"
	"github.com/therealadik/card-management/internal/middleware"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
	"github.com/therealadik/card-management/internal/service"
)

// newRouter собирает маршруты. Логин не требует токена, остальные маршруты
// защищены JWT и разделены по ролям.
func newRouter(
	cardHandler *handler.CardHandler,
	transactionHandler *handler.TransactionHandler,
	userHandler *handler.UserHandler,
	jwtMiddleware *middleware.JWTMiddleware,
) *mux.Router {
	admin := middleware.RequireRole(models.RoleAdmin)
	user := middleware.RequireRole(models.RoleUser)

	r := mux.NewRouter()
	r.HandleFunc("/card-management/auth/login", userHandler.Login).Methods("POST")

	protected := r.PathPrefix("/card-management").Subrouter()
	protected.Use(jwtMiddleware.Middleware)

	protected.Handle("/create-card", admin(http.HandlerFunc(cardHandler.CreateCard))).Methods("POST")
	protected.Handle("/delete-card/{cardId}", admin(http.HandlerFunc(cardHandler.DeleteCard))).Methods("DELETE")
	protected.Handle("/block-card/{cardId}", admin(http.HandlerFunc(cardHandler.BlockCard))).Methods("PATCH")
	protected.Handle("/activate-card/{cardId}", admin(http.HandlerFunc(cardHandler.ActivateCard))).Methods("PATCH")
	protected.Handle("/set-card-limits/{cardId}", admin(http.HandlerFunc(cardHandler.SetCardLimits))).Methods("PATCH")
	protected.Handle("/get-cards", admin(http.HandlerFunc(cardHandler.GetCards))).Methods("GET")
	protected.Handle("/get-transactions", admin(http.HandlerFunc(transactionHandler.GetTransactions))).Methods("GET")
	protected.Handle("/create-user", admin(http.HandlerFunc(userHandler.CreateUser))).Methods("POST")
	protected.Handle("/delete-user/{userId}", admin(http.HandlerFunc(userHandler.DeleteUser))).Methods("DELETE")

	protected.Handle("/get-my-cards", user(http.HandlerFunc(cardHandler.GetOwnCards))).Methods("GET")
	protected.Handle("/block-my-card/{cardId}", user(http.HandlerFunc(cardHandler.BlockOwnCard))).Methods("PATCH")
	protected.Handle("/cash-withdraw/{cardId}", user(http.HandlerFunc(cardHandler.CashWithdraw))).Methods("POST")
	protected.Handle("/transfer-between-cards", user(http.HandlerFunc(cardHandler.TransferBetweenCards))).Methods("POST")
	protected.Handle("/get-my-transactions", user(http.HandlerFunc(transactionHandler.GetOwnTransactions))).Methods("GET")

	return r
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	dbCfg := config.LoadDB()
	cryptoCfg := config.LoadCrypto()
	jwtCfg := config.LoadJWT()
	serverCfg := config.LoadServer()

	migrator, err := migrate.New("file://migrations", dbCfg.DSN())
	if err != nil {
		logger.Fatalf("Не удалось инициализировать миграции: %v", err)
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatalf("Не удалось применить миграции: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbCfg.DSN())
	if err != nil {
		logger.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Fatalf("База данных недоступна: %v", err)
	}

	encryption, err := service.NewEncryptionService(cryptoCfg.EncryptionKey)
	if err != nil {
		logger.Fatalf("Не удалось инициализировать шифрование: %v", err)
	}

	cardRepo := repository.NewCardRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	txManager := repository.NewTxManager(pool)

	validation := service.NewCardValidationService(cardRepo)
	limits := service.NewLimitService(transactionRepo)
	cardService := service.NewCardService(cardRepo, transactionRepo, userRepo, encryption, validation, limits, txManager, logger)
	transferService := service.NewTransferService(cardRepo, transactionRepo, validation, txManager, logger)
	transactionService := service.NewTransactionService(transactionRepo, cardRepo)
	userService := service.NewUserService(userRepo, logger)
	authService := service.NewAuthService(userRepo, jwtCfg)

	cardHandler := handler.NewCardHandler(cardService, transferService, logger)
	transactionHandler := handler.NewTransactionHandler(transactionService, logger)
	userHandler := handler.NewUserHandler(userService, authService, logger)
	jwtMiddleware := middleware.NewJWTMiddleware(authService, logger)

	r := newRouter(cardHandler, transactionHandler, userHandler, jwtMiddleware)

	addr := fmt.Sprintf(":%s", serverCfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
	}

	logger.Infof("Сервер запускается на %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Сервер завершился с ошибкой: %v", err)
	}
}
