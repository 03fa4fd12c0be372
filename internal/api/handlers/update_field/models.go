package update_field

import (
	"github.com/USMarket/USM-CheckoutService/internal/service/checkout/models"
)

// UpdateFieldRequest HTTP request model
type UpdateFieldRequest struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateFieldRequest) ToServiceRequest() *models.UpdateFieldRequest {
	return &models.UpdateFieldRequest{
		Section: r.Section,
		Field:   r.Field,
		Value:   r.Value,
	}
}
