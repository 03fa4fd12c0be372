package submit_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
	"github.com/USMarket/USM-CheckoutService/internal/integrations/bookingservice"
)

// SessionRepository интерфейс репозитория сессий оформления
type SessionRepository interface {
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.CheckoutSession, error)
	Update(ctx context.Context, s *domain.CheckoutSession) error
	SetSubmissionInFlight(ctx context.Context, id int64, inFlight bool) error
}

// BookingServiceClient интерфейс клиента для BookingService
type BookingServiceClient interface {
	CreateBooking(ctx context.Context, request *domain.BookingRequest) (*bookingservice.BookingRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
