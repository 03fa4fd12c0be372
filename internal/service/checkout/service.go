package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
	sessionRepo "github.com/USMarket/USM-CheckoutService/internal/infra/storage/session"
	"github.com/USMarket/USM-CheckoutService/internal/service/checkout/models"
)

// Service сервис синхронных операций мастера оформления
// (чтение состояния, обновление поля, переходы между шагами)
//
// Операции не выполняют внешних вызовов и не блокируются на I/O,
// кроме чтения/записи строки сессии
type Service struct {
	sessionRepo  SessionRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса оформления
func NewService(sessionRepo SessionRepository, logger Logger) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetSession возвращает состояние сессии со свежим расчётом стоимости
func (s *Service) GetSession(ctx context.Context, publicID uuid.UUID, userID int64) (*models.SessionResponse, error) {
	session, err := s.loadOwnedSession(ctx, publicID, userID, "GetSession")
	if err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// UpdateField обновляет одно поле черновика
// Ошибка валидации именно этого поля очищается оптимистически;
// повторная валидация выполняется только при переходе вперёд
func (s *Service) UpdateField(ctx context.Context, publicID uuid.UUID, userID int64, req *models.UpdateFieldRequest) (*models.SessionResponse, error) {
	session, err := s.loadOwnedSession(ctx, publicID, userID, "UpdateField")
	if err != nil {
		return nil, err
	}

	if session.IsCompleted() {
		s.logger.Warn("UpdateField: session %s already completed", publicID)
		return nil, ErrSessionCompleted
	}

	if err := session.Wizard.UpdateField(req.Section, req.Field, req.Value); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownSection),
			errors.Is(err, domain.ErrUnknownField),
			errors.Is(err, domain.ErrInvalidFieldValue):
			s.logger.Warn("UpdateField: invalid field update %s.%s for session %s: %v",
				req.Section, req.Field, publicID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			return nil, fmt.Errorf("%w: UpdateField - wizard error: %v", ErrInternal, err)
		}
	}

	if err := s.saveSession(ctx, session, "UpdateField"); err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// Advance валидирует текущий шаг и при успехе переходит к следующему
// Ошибки валидации не являются ошибкой операции: они возвращаются
// внутри состояния сессии, а шаг остаётся прежним
func (s *Service) Advance(ctx context.Context, publicID uuid.UUID, userID int64) (*models.SessionResponse, error) {
	session, err := s.loadOwnedSession(ctx, publicID, userID, "Advance")
	if err != nil {
		return nil, err
	}

	if session.IsCompleted() {
		s.logger.Warn("Advance: session %s already completed", publicID)
		return nil, ErrSessionCompleted
	}

	advanced := session.Wizard.Advance(s.timeProvider.Now())
	if advanced {
		s.logger.Info("Advance: session %s moved to step %d", publicID, session.Wizard.CurrentStep)
	} else {
		s.logger.Info("Advance: session %s stays at step %d, %d validation errors",
			publicID, session.Wizard.CurrentStep, len(session.Wizard.Errors))
	}

	if err := s.saveSession(ctx, session, "Advance"); err != nil {
		return nil, err
	}

	return models.FromDomainSession(session), nil
}

// Retreat возвращает сессию на предыдущий шаг
// Переход назад разрешён всегда, валидация не выполняется,
// ошибки и черновик не изменяются
func (s *Service) Retreat(ctx context.Context, publicID uuid.UUID, userID int64) (*models.SessionResponse, error) {
	session, err := s.loadOwnedSession(ctx, publicID, userID, "Retreat")
	if err != nil {
		return nil, err
	}

	if session.IsCompleted() {
		s.logger.Warn("Retreat: session %s already completed", publicID)
		return nil, ErrSessionCompleted
	}

	session.Wizard.Retreat()

	if err := s.saveSession(ctx, session, "Retreat"); err != nil {
		return nil, err
	}

	s.logger.Info("Retreat: session %s at step %d", publicID, session.Wizard.CurrentStep)
	return models.FromDomainSession(session), nil
}

// loadOwnedSession загружает сессию и проверяет права доступа
func (s *Service) loadOwnedSession(ctx context.Context, publicID uuid.UUID, userID int64, op string) (*domain.CheckoutSession, error) {
	session, err := s.sessionRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: session %s not found", op, publicID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for session %s: %v", op, publicID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !session.BelongsTo(userID) {
		s.logger.Warn("%s: access denied for user=%d to session %s", op, userID, publicID)
		return nil, ErrAccessDenied
	}

	return session, nil
}

func (s *Service) saveSession(ctx context.Context, session *domain.CheckoutSession, op string) error {
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		s.logger.Error("%s: failed to save session %s: %v", op, session.PublicID, err)
		return fmt.Errorf("%w: %s - failed to save session: %v", ErrInternal, op, err)
	}
	return nil
}
