package submit_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия оформления не найдена
	ErrSessionNotFound = errors.New("submit_booking: checkout session not found")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("submit_booking: access denied")

	// ErrSessionCompleted возвращается при повторной отправке завершённой сессии
	ErrSessionCompleted = errors.New("submit_booking: session already completed")

	// ErrNotAtConfirmStep возвращается, когда сессия ещё не дошла до шага подтверждения
	ErrNotAtConfirmStep = errors.New("submit_booking: session is not at confirm step")

	// ErrSubmissionInFlight возвращается при повторном клике, пока отправка не завершена
	// Повторный запрос подавляется, а не ставится в очередь
	ErrSubmissionInFlight = errors.New("submit_booking: submission already in flight")

	// ErrValidationFailed возвращается, когда повторная проверка предыдущих
	// шагов перед отправкой нашла ошибки
	ErrValidationFailed = errors.New("submit_booking: draft validation failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// SubmissionError ошибка отправки заказа в BookingService
// Message содержит единственное человекочитаемое сообщение, которое
// показывается клиенту под ключом "submit"; черновик при этом сохранён
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return "submit_booking: submission failed: " + e.Message
}
