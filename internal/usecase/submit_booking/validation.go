package submit_booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/USMarket/USM-CheckoutService/internal/integrations/bookingservice"
)

// msgSubmitFallback общее сообщение, когда ни сервер, ни транспорт
// не дали пригодного текста ошибки
const msgSubmitFallback = "не удалось оформить заказ, попробуйте ещё раз"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SessionID == uuid.Nil {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	return nil
}

// submitErrorMessage выбирает сообщение об ошибке отправки
// Приоритет: структурированное серверное сообщение, затем сообщение
// транспортного уровня, затем общий fallback
func submitErrorMessage(err error) string {
	var apiErr *bookingservice.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgSubmitFallback
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return msgSubmitFallback
}
