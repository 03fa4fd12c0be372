package retreat_step

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
	msgInvalidSessionID = "некорректный ID сессии"
	msgSessionNotFound  = "сессия оформления не найдена"
	msgSessionCompleted = "сессия оформления уже завершена"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
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

// Handle POST /api/v1/checkout/{sessionId}/retreat
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := uuid.Parse(vars["sessionId"])
	if err != nil {
		h.logger.Warn("POST /checkout/{id}/retreat - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkout/{id}/retreat - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.service.Retreat(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			h.logger.Warn("POST /checkout/{id}/retreat - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, checkout.ErrAccessDenied):
			h.logger.Warn("POST /checkout/{id}/retreat - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkout.ErrSessionCompleted):
			h.logger.Warn("POST /checkout/{id}/retreat - Session completed: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionCompleted)

		default:
			h.logger.Error("POST /checkout/{id}/retreat - Failed to retreat: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}
