package update_field

import (
	"context"

	"github.com/google/uuid"

	"github.com/USMarket/USM-CheckoutService/internal/service/checkout/models"
)

type CheckoutService interface {
	UpdateField(ctx context.Context, publicID uuid.UUID, userID int64, req *models.UpdateFieldRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
