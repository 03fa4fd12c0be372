package update_field

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/USMarket/USM-CheckoutService/internal/api/handlers"
	"github.com/USMarket/USM-CheckoutService/internal/api/middleware"
	"github.com/USMarket/USM-CheckoutService/internal/service/checkout"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidField       = "некорректная секция, поле или значение"
	msgSessionNotFound    = "сессия оформления не найдена"
	msgSessionCompleted   = "сессия оформления уже завершена"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service CheckoutService
	logger  Logger
}

func NewHandler(service CheckoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/checkout/{sessionId}/fields
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["sessionId"])
	if err != nil {
		h.logger.Warn("PATCH /checkout/{id}/fields - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /checkout/{id}/fields - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /checkout/{id}/fields - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.UpdateField(r.Context(), sessionID, userID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidInput):
			h.logger.Warn("PATCH /checkout/{id}/fields - Invalid field: session_id=%s, section=%s, field=%s",
				sessionID, req.Section, req.Field)
			handlers.RespondBadRequest(w, msgInvalidField)

		case errors.Is(err, checkout.ErrSessionNotFound):
			h.logger.Warn("PATCH /checkout/{id}/fields - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, checkout.ErrAccessDenied):
			h.logger.Warn("PATCH /checkout/{id}/fields - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkout.ErrSessionCompleted):
			h.logger.Warn("PATCH /checkout/{id}/fields - Session completed: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionCompleted)

		default:
			h.logger.Error("PATCH /checkout/{id}/fields - Failed to update field: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}
