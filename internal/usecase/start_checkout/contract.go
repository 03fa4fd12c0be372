package start_checkout

import (
	"context"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
	"github.com/USMarket/USM-CheckoutService/internal/integrations/catalogservice"
	"github.com/USMarket/USM-CheckoutService/internal/integrations/profileservice"
)

// SessionRepository интерфейс репозитория сессий оформления
type SessionRepository interface {
	GetActiveByUserAndService(ctx context.Context, userID, serviceID int64) (*domain.CheckoutSession, error)
	Create(ctx context.Context, s *domain.CheckoutSession) (*domain.CheckoutSession, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetCurrentCustomer(ctx context.Context, userID int64) (*profileservice.Customer, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetServiceOffering(ctx context.Context, serviceID int64) (*catalogservice.ServiceOffering, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
