package submit_booking

import (
	"time"

	submitBooking "github.com/USMarket/USM-CheckoutService/internal/usecase/submit_booking"
)

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	BookingID     int64   `json:"bookingId"`
	SessionID     string  `json:"sessionId"`
	Status        string  `json:"status"`
	PreferredDate string  `json:"preferredDate"`
	TimeSlot      string  `json:"timeSlot"`
	TotalAmount   float64 `json:"totalAmount"`
	CreatedAt     string  `json:"createdAt"`
}

// SubmitErrorResponse HTTP модель ошибки отправки
// Ошибка одна, не привязана к полю и отображается над кнопками действия
type SubmitErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		BookingID:     resp.BookingID,
		SessionID:     resp.SessionID,
		Status:        resp.Status,
		PreferredDate: resp.PreferredDate,
		TimeSlot:      resp.TimeSlot,
		TotalAmount:   resp.TotalAmount,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
