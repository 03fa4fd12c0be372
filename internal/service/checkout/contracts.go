package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий оформления
type SessionRepository interface {
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.CheckoutSession, error)
	Update(ctx context.Context, s *domain.CheckoutSession) error
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
