package submit_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на отправку заказа
type Request struct {
	UserID    int64     // ID пользователя
	SessionID uuid.UUID // Публичный идентификатор сессии оформления
}

// Response модель ответа с созданным бронированием
// Сессия после успешной отправки завершена и повторно не используется
type Response struct {
	BookingID     int64     // ID созданного бронирования
	SessionID     string    // Идентификатор завершённой сессии
	Status        string    // Статус бронирования
	PreferredDate string    // Дата визита
	TimeSlot      string    // Временной слот
	TotalAmount   float64   // Итоговая стоимость
	CreatedAt     time.Time // Время создания бронирования
}
