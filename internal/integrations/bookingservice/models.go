package bookingservice

import "time"

// BookingRecord созданное бронирование из BookingService
type BookingRecord struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	ServiceID     int64     `json:"service_id"`
	ProviderID    int64     `json:"provider_id"`
	Status        string    `json:"status"`
	PreferredDate string    `json:"preferred_date"`
	TimeSlot      string    `json:"time_slot"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// ErrorResponse модель ошибки от BookingService
// Сервис отдаёт либо структурированную ошибку в поле error,
// либо общее сообщение верхнего уровня
type ErrorResponse struct {
	Error   *ErrorDetail `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
}

// ErrorDetail структурированная ошибка BookingService
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
