package start_checkout

import (
	checkoutModels "github.com/USMarket/USM-CheckoutService/internal/service/checkout/models"
	startCheckout "github.com/USMarket/USM-CheckoutService/internal/usecase/start_checkout"
)

// StartCheckoutRequest HTTP request model
type StartCheckoutRequest struct {
	ServiceID int64 `json:"serviceId"`
}

// StartCheckoutResponse HTTP response model
type StartCheckoutResponse struct {
	Resumed bool                            `json:"resumed"`
	Session *checkoutModels.SessionResponse `json:"session"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *StartCheckoutRequest) ToUseCaseRequest(userID int64) *startCheckout.Request {
	return &startCheckout.Request{
		UserID:    userID,
		ServiceID: r.ServiceID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *startCheckout.Response) *StartCheckoutResponse {
	return &StartCheckoutResponse{
		Resumed: resp.Resumed,
		Session: resp.Session,
	}
}
