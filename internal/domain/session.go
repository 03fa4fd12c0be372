package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus статус сессии оформления заказа
type SessionStatus string

const (
	// SessionStatusActive сессия в процессе оформления
	SessionStatusActive SessionStatus = "active"

	// SessionStatusCompleted заказ успешно отправлен, сессия завершена
	// Завершённая сессия не принимает дальнейших изменений
	SessionStatusCompleted SessionStatus = "completed"
)

// CheckoutSession сессия оформления заказа
//
// Серверное воплощение экземпляра мастера: одна сессия - один мастер.
// Данные услуги денормализуются в сессию при её создании (односторонний
// снимок каталога), поэтому расчёт цены внутри сессии стабилен даже при
// изменении каталога. Черновик принадлежит только этой сессии; две
// конкурентные сессии никогда не разделяют черновик.
type CheckoutSession struct {
	ID       int64
	PublicID uuid.UUID
	UserID   int64

	// Денормализованные данные услуги (снимок на момент создания сессии)
	ServiceID       int64
	ServiceName     string
	BasePrice       *float64
	DiscountPrice   *float64
	DurationMinutes int
	ProviderID      int64

	Wizard Wizard

	Status    SessionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Offering восстанавливает услугу из денормализованного снимка сессии
func (s *CheckoutSession) Offering() *ServiceOffering {
	return &ServiceOffering{
		ID:              s.ServiceID,
		Name:            s.ServiceName,
		BasePrice:       s.BasePrice,
		DiscountPrice:   s.DiscountPrice,
		DurationMinutes: s.DurationMinutes,
		ProviderID:      s.ProviderID,
	}
}

// Pricing возвращает свежий расчёт стоимости заказа
// Расчёт производный и выполняется при каждом чтении, а не хранится
func (s *CheckoutSession) Pricing() PricingSnapshot {
	return ComputePricing(s.Offering(), s.Wizard.Draft.Quantity)
}

// IsCompleted возвращает true для завершённой сессии
func (s *CheckoutSession) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// BelongsTo проверяет принадлежность сессии пользователю
func (s *CheckoutSession) BelongsTo(userID int64) bool {
	return s.UserID == userID
}
