package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	advanceStepHandler "github.com/USMarket/USM-CheckoutService/internal/api/handlers/advance_step"
	getCheckoutHandler "github.com/USMarket/USM-CheckoutService/internal/api/handlers/get_checkout"
	retreatStepHandler "github.com/USMarket/USM-CheckoutService/internal/api/handlers/retreat_step"
	startCheckoutHandler "github.com/USMarket/USM-CheckoutService/internal/api/handlers/start_checkout"
	submitBookingHandler "github.com/USMarket/USM-CheckoutService/internal/api/handlers/submit_booking"
	updateFieldHandler "github.com/USMarket/USM-CheckoutService/internal/api/handlers/update_field"
	"github.com/USMarket/USM-CheckoutService/internal/api/middleware"
	"github.com/USMarket/USM-CheckoutService/internal/config"
	sessionRepo "github.com/USMarket/USM-CheckoutService/internal/infra/storage/session"
	bookingServiceClient "github.com/USMarket/USM-CheckoutService/internal/integrations/bookingservice"
	catalogServiceClient "github.com/USMarket/USM-CheckoutService/internal/integrations/catalogservice"
	profileServiceClient "github.com/USMarket/USM-CheckoutService/internal/integrations/profileservice"
	checkoutService "github.com/USMarket/USM-CheckoutService/internal/service/checkout"
	startCheckoutUC "github.com/USMarket/USM-CheckoutService/internal/usecase/start_checkout"
	submitBookingUC "github.com/USMarket/USM-CheckoutService/internal/usecase/submit_booking"
	"github.com/USMarket/USM-CheckoutService/pkg/dbmetrics"
	"github.com/USMarket/USM-CheckoutService/pkg/logger"
	"github.com/USMarket/USM-CheckoutService/pkg/metrics"
	"github.com/USMarket/USM-CheckoutService/pkg/simpletxmanager"
	"github.com/USMarket/USM-CheckoutService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting USM-CheckoutService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	bookingClient := bookingServiceClient.NewClient(
		cfg.BookingService.URL,
		time.Duration(cfg.BookingService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds, CatalogService=%s timeout=%ds, BookingService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout,
		cfg.CatalogService.URL, cfg.CatalogService.Timeout,
		cfg.BookingService.URL, cfg.BookingService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var sessionRepository *sessionRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	checkoutSvc := checkoutService.NewService(sessionRepository, log)

	// Инициализируем use cases
	startCheckoutUseCase := startCheckoutUC.NewUseCase(
		sessionRepository,
		profileClient,
		catalogClient,
		txMgr,
		log,
	)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		sessionRepository,
		bookingClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	startCheckout := startCheckoutHandler.NewHandler(startCheckoutUseCase, log)
	getCheckout := getCheckoutHandler.NewHandler(checkoutSvc, log)
	updateField := updateFieldHandler.NewHandler(checkoutSvc, log)
	advanceStep := advanceStepHandler.NewHandler(checkoutSvc, log)
	retreatStep := retreatStepHandler.NewHandler(checkoutSvc, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все операции оформления требуют X-User-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание (или возобновление) сессии оформления
	protected.HandleFunc("/checkout", startCheckout.Handle).Methods(http.MethodPost)

	// Текущее состояние сессии
	protected.HandleFunc("/checkout/{sessionId}", getCheckout.Handle).Methods(http.MethodGet)

	// Обновление одного поля черновика
	protected.HandleFunc("/checkout/{sessionId}/fields", updateField.Handle).Methods(http.MethodPatch)

	// Переходы между шагами мастера
	protected.HandleFunc("/checkout/{sessionId}/advance", advanceStep.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/checkout/{sessionId}/retreat", retreatStep.Handle).Methods(http.MethodPost)

	// Отправка заказа
	protected.HandleFunc("/checkout/{sessionId}/submit", submitBooking.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
