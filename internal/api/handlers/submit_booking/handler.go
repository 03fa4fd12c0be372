package submit_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/USMarket/USM-CheckoutService/internal/api/handlers"
	"github.com/USMarket/USM-CheckoutService/internal/api/middleware"
	"github.com/USMarket/USM-CheckoutService/internal/domain"
	submitBooking "github.com/USMarket/USM-CheckoutService/internal/usecase/submit_booking"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgSessionNotFound    = "сессия оформления не найдена"
	msgSessionCompleted   = "заказ по этой сессии уже оформлен"
	msgNotAtConfirmStep   = "оформление ещё не дошло до шага подтверждения"
	msgSubmissionInFlight = "отправка уже выполняется"
	msgValidationFailed   = "данные заказа не прошли проверку, вернитесь к предыдущим шагам"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout/{sessionId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["sessionId"])
	if err != nil {
		h.logger.Warn("POST /checkout/{id}/submit - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkout/{id}/submit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		// Неудачная отправка в BookingService: черновик сохранён,
		// клиенту отдаётся единственная ошибка под ключом "submit"
		var subErr *submitBooking.SubmissionError
		if errors.As(err, &subErr) {
			h.logger.Warn("POST /checkout/{id}/submit - Submission failed: session_id=%s, message=%s",
				sessionID, subErr.Message)
			handlers.RespondJSON(w, http.StatusBadGateway, &SubmitErrorResponse{
				Errors: map[string]string{domain.SubmitErrorKey: subErr.Message},
			})
			return
		}

		switch {
		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /checkout/{id}/submit - Invalid input: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		case errors.Is(err, submitBooking.ErrSessionNotFound):
			h.logger.Warn("POST /checkout/{id}/submit - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitBooking.ErrAccessDenied):
			h.logger.Warn("POST /checkout/{id}/submit - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitBooking.ErrSessionCompleted):
			h.logger.Warn("POST /checkout/{id}/submit - Session completed: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionCompleted)

		case errors.Is(err, submitBooking.ErrNotAtConfirmStep):
			h.logger.Warn("POST /checkout/{id}/submit - Not at confirm step: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgNotAtConfirmStep)

		case errors.Is(err, submitBooking.ErrSubmissionInFlight):
			h.logger.Warn("POST /checkout/{id}/submit - Submission in flight: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSubmissionInFlight)

		case errors.Is(err, submitBooking.ErrValidationFailed):
			h.logger.Warn("POST /checkout/{id}/submit - Revalidation failed: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /checkout/{id}/submit - Failed to submit: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout/{id}/submit - Booking created: booking_id=%d, session_id=%s, user_id=%d",
		result.BookingID, sessionID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
