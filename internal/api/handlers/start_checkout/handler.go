package start_checkout

import (
	"errors"
	"net/http"

	"github.com/USMarket/USM-CheckoutService/internal/api/handlers"
	"github.com/USMarket/USM-CheckoutService/internal/api/middleware"
	startCheckout "github.com/USMarket/USM-CheckoutService/internal/usecase/start_checkout"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProfileNotFound    = "профиль клиента не найден"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase StartCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase StartCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req StartCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, startCheckout.ErrInvalidInput):
			h.logger.Warn("POST /checkout - Invalid input: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, startCheckout.ErrProfileNotFound):
			h.logger.Warn("POST /checkout - Profile not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, startCheckout.ErrOfferingNotFound):
			h.logger.Warn("POST /checkout - Service not found: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /checkout - Failed to start checkout: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Resumed {
		status = http.StatusOK
	}

	h.logger.Info("POST /checkout - Session %s ready (resumed=%t): user_id=%d, service_id=%d",
		result.Session.SessionID, result.Resumed, userID, req.ServiceID)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
