package submit_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/USMarket/USM-CheckoutService/internal/api/middleware"
	submitBooking "github.com/USMarket/USM-CheckoutService/internal/usecase/submit_booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubUseCase struct {
	resp *submitBooking.Response
	err  error

	gotReq *submitBooking.Request
}

func (u *stubUseCase) Execute(_ context.Context, req *submitBooking.Request) (*submitBooking.Response, error) {
	u.gotReq = req
	if u.err != nil {
		return nil, u.err
	}
	return u.resp, nil
}

// do выполняет запрос через роутер с auth middleware, как в production
func do(t *testing.T, uc *stubUseCase, sessionID, userID string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/checkout/{sessionId}/submit", handler.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/"+sessionID+"/submit", nil)
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	sessionID := uuid.New()
	uc := &stubUseCase{
		resp: &submitBooking.Response{
			BookingID:     9001,
			SessionID:     sessionID.String(),
			Status:        "pending",
			PreferredDate: "2025-06-20",
			TimeSlot:      "11:00-13:00",
			TotalAmount:   1900,
			CreatedAt:     time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		},
	}

	rec := do(t, uc, sessionID.String(), "7")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(7), uc.gotReq.UserID)
	assert.Equal(t, sessionID, uc.gotReq.SessionID)

	var body SubmitBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(9001), body.BookingID)
	assert.Equal(t, "2025-06-15T12:00:00Z", body.CreatedAt)
}

func TestHandle_SubmissionErrorReturnsSubmitKey(t *testing.T) {
	uc := &stubUseCase{err: &submitBooking.SubmissionError{Message: "выбранный слот недоступен"}}

	rec := do(t, uc, uuid.New().String(), "7")

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body SubmitErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"submit": "выбранный слот недоступен"}, body.Errors)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"сессия не найдена", submitBooking.ErrSessionNotFound, http.StatusNotFound},
		{"чужая сессия", submitBooking.ErrAccessDenied, http.StatusForbidden},
		{"сессия завершена", submitBooking.ErrSessionCompleted, http.StatusConflict},
		{"не на шаге подтверждения", submitBooking.ErrNotAtConfirmStep, http.StatusConflict},
		{"отправка уже идёт", submitBooking.ErrSubmissionInFlight, http.StatusConflict},
		{"повторная валидация не прошла", submitBooking.ErrValidationFailed, http.StatusBadRequest},
		{"внутренняя ошибка", submitBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, &stubUseCase{err: tt.err}, uuid.New().String(), "7")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_InvalidSessionID(t *testing.T) {
	rec := do(t, &stubUseCase{}, "not-a-uuid", "7")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingUserHeader(t *testing.T) {
	uc := &stubUseCase{}
	rec := do(t, uc, uuid.New().String(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.gotReq, "use case не вызывается без аутентификации")
}
