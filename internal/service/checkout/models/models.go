package models

import (
	"time"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
)

// Request модели

// UpdateFieldRequest запрос на обновление одного поля черновика
type UpdateFieldRequest struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

// Response модели

// SessionResponse полное состояние сессии оформления
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	UserID    int64  `json:"userId"`
	Status    string `json:"status"`

	// Услуга (снимок каталога на момент создания сессии)
	Service ServiceResponse `json:"service"`

	CurrentStep        int               `json:"currentStep"`
	StepName           string            `json:"stepName"`
	Draft              DraftResponse     `json:"draft"`
	Errors             map[string]string `json:"errors"`
	SubmissionInFlight bool              `json:"submissionInFlight"`

	// Pricing всегда пересчитывается на момент чтения
	Pricing PricingResponse `json:"pricing"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceResponse данные услуги в сессии
type ServiceResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	BasePrice       *float64 `json:"basePrice,omitempty"`
	DiscountPrice   *float64 `json:"discountPrice,omitempty"`
	DiscountPercent int      `json:"discountPercent"`
	DurationMinutes int      `json:"durationMinutes"`
	ProviderID      int64    `json:"providerId"`
}

// DraftResponse черновик заказа
type DraftResponse struct {
	Quantity     int                  `json:"quantity"`
	CustomerInfo CustomerInfoResponse `json:"customerInfo"`
	Address      AddressResponse      `json:"serviceAddress"`
	Scheduling   SchedulingResponse   `json:"scheduling"`
	Requirements RequirementsResponse `json:"requirements"`
	Payment      PaymentResponse      `json:"payment"`
}

// CustomerInfoResponse контактные данные клиента
type CustomerInfoResponse struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternatePhone,omitempty"`
}

// AddressResponse адрес оказания услуги
type AddressResponse struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Landmark     string `json:"landmark,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// SchedulingResponse предпочтительное расписание
type SchedulingResponse struct {
	PreferredDate     string `json:"preferredDate,omitempty"`
	PreferredTimeSlot string `json:"preferredTimeSlot,omitempty"`
}

// RequirementsResponse дополнительные требования
type RequirementsResponse struct {
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
	Materials           []string `json:"materials,omitempty"`
}

// PaymentResponse параметры оплаты
type PaymentResponse struct {
	Method string `json:"method"`
}

// PricingResponse производный расчёт стоимости
type PricingResponse struct {
	Subtotal    float64 `json:"subtotal"`
	VisitCharge float64 `json:"visitCharge"`
	Taxes       float64 `json:"taxes"`
	Total       float64 `json:"total"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель сессии в DTO
// Блок pricing вычисляется заново при каждой конвертации
func FromDomainSession(s *domain.CheckoutSession) *SessionResponse {
	if s == nil {
		return nil
	}

	draft := s.Wizard.Draft
	pricing := s.Pricing()
	offering := s.Offering()

	return &SessionResponse{
		SessionID: s.PublicID.String(),
		UserID:    s.UserID,
		Status:    string(s.Status),

		Service: ServiceResponse{
			ID:              s.ServiceID,
			Name:            s.ServiceName,
			BasePrice:       s.BasePrice,
			DiscountPrice:   s.DiscountPrice,
			DiscountPercent: domain.DiscountPercent(offering),
			DurationMinutes: s.DurationMinutes,
			ProviderID:      s.ProviderID,
		},

		CurrentStep:        int(s.Wizard.CurrentStep),
		StepName:           s.Wizard.CurrentStep.String(),
		Draft:              fromDomainDraft(draft),
		Errors:             s.Wizard.Errors,
		SubmissionInFlight: s.Wizard.SubmissionInFlight,

		Pricing: PricingResponse{
			Subtotal:    pricing.Subtotal,
			VisitCharge: pricing.VisitCharge,
			Taxes:       pricing.Taxes,
			Total:       pricing.Total,
		},

		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromDomainDraft(d *domain.BookingDraft) DraftResponse {
	return DraftResponse{
		Quantity: d.Quantity,
		CustomerInfo: CustomerInfoResponse{
			Name:           d.CustomerInfo.Name,
			Email:          d.CustomerInfo.Email,
			Phone:          d.CustomerInfo.Phone,
			AlternatePhone: d.CustomerInfo.AlternatePhone,
		},
		Address: AddressResponse{
			Street:       d.Address.Street,
			City:         d.Address.City,
			State:        d.Address.State,
			ZipCode:      d.Address.ZipCode,
			Landmark:     d.Address.Landmark,
			Instructions: d.Address.Instructions,
		},
		Scheduling: SchedulingResponse{
			PreferredDate:     d.Scheduling.PreferredDate,
			PreferredTimeSlot: d.Scheduling.PreferredTimeSlot.String(),
		},
		Requirements: RequirementsResponse{
			SpecialInstructions: d.Requirements.SpecialInstructions,
			Materials:           d.Requirements.Materials,
		},
		Payment: PaymentResponse{
			Method: string(d.Payment.Method),
		},
	}
}
