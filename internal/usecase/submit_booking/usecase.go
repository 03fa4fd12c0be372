package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
	sessionRepo "github.com/USMarket/USM-CheckoutService/internal/infra/storage/session"
)

// UseCase use case отправки оформленного заказа в BookingService
//
// Единственная операция сервиса с внешней записью. Выполняет ровно один
// вызов создания бронирования на один клик пользователя: повторный клик
// при незавершённой отправке подавляется флагом submission_in_flight,
// который выставляется в сериализуемой транзакции
type UseCase struct {
	sessionRepo   SessionRepository
	bookingClient BookingServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	bookingClient BookingServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:   sessionRepo,
		bookingClient: bookingClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case отправки заказа
//
// Прекондиции: сессия на шаге подтверждения, предыдущие шаги повторно
// валидны (кэшированной валидности произвольной давности не доверяем).
// При неудачной отправке черновик сохраняется без изменений, а клиенту
// возвращается единственное сообщение под ключом "submit" - поля заново
// вводить не нужно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: user=%d, session=%s", req.UserID, req.SessionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var session *domain.CheckoutSession

	// 2. Проверяем прекондиции и захватываем флаг отправки в сериализуемой
	// транзакции: два одновременных клика не должны пройти guard вдвоём
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		s, err := uc.sessionRepo.GetByPublicID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("SubmitBooking: session %s not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("SubmitBooking: failed to get session %s: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		if !s.BelongsTo(req.UserID) {
			uc.logger.Warn("SubmitBooking: access denied for user=%d to session %s", req.UserID, req.SessionID)
			return ErrAccessDenied
		}

		if s.IsCompleted() {
			uc.logger.Warn("SubmitBooking: session %s already completed", req.SessionID)
			return ErrSessionCompleted
		}

		// 2.1. Отправка возможна только с шага подтверждения
		if s.Wizard.CurrentStep != domain.StepConfirm {
			uc.logger.Warn("SubmitBooking: session %s at step %d, confirm step required",
				req.SessionID, s.Wizard.CurrentStep)
			return ErrNotAtConfirmStep
		}

		// 2.2. Повторный клик при незавершённой отправке - no-op
		if s.Wizard.SubmissionInFlight {
			uc.logger.Warn("SubmitBooking: submission already in flight for session %s", req.SessionID)
			return ErrSubmissionInFlight
		}

		// 2.3. Повторно валидируем предыдущие шаги
		if errs := domain.ValidatePriorSteps(s.Wizard.Draft, now); len(errs) > 0 {
			uc.logger.Warn("SubmitBooking: revalidation failed for session %s: %d errors",
				req.SessionID, len(errs))
			s.Wizard.Errors = errs
			if uerr := uc.sessionRepo.Update(txCtx, s); uerr != nil {
				uc.logger.Error("SubmitBooking: failed to save validation errors: %v", uerr)
			}
			return ErrValidationFailed
		}

		// 2.4. Захватываем флаг отправки
		if err := uc.sessionRepo.SetSubmissionInFlight(txCtx, s.ID, true); err != nil {
			uc.logger.Error("SubmitBooking: failed to set in-flight flag: %v", err)
			return fmt.Errorf("%w: failed to set in-flight flag: %v", ErrInternal, err)
		}

		s.Wizard.SubmissionInFlight = true
		session = s
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. Строим неизменяемый запрос из снимка сессии и свежего расчёта цены
	request := domain.BuildBookingRequest(session)

	uc.logger.Info("SubmitBooking: sending booking request for session %s, total=%.2f",
		req.SessionID, request.TotalAmount)

	// 4. Единственный внешний write-вызов
	record, err := uc.bookingClient.CreateBooking(ctx, request)

	// Флаг отправки уже взведён в базе: итоговое состояние обязано
	// сохраниться, даже если клиент оборвал соединение и запросный
	// контекст отменён - иначе сессия навсегда останется заблокированной
	persistCtx := context.WithoutCancel(ctx)

	if err != nil {
		return nil, uc.failSubmission(persistCtx, session, err)
	}

	// 5. Успех: сессия завершается и больше не используется
	session.Wizard.SubmissionInFlight = false
	session.Wizard.Errors = domain.FieldErrors{}
	session.Status = domain.SessionStatusCompleted

	if uerr := uc.sessionRepo.Update(persistCtx, session); uerr != nil {
		// Бронирование уже создано; ошибку фиксации сессии не транслируем
		// клиенту, но оставляем громкий след в логах
		uc.logger.Error("SubmitBooking: booking id=%d created but session %s not finalized: %v",
			record.ID, req.SessionID, uerr)
	}

	uc.logger.Info("SubmitBooking: successfully created booking id=%d for session %s",
		record.ID, req.SessionID)

	return &Response{
		BookingID:     record.ID,
		SessionID:     session.PublicID.String(),
		Status:        record.Status,
		PreferredDate: record.PreferredDate,
		TimeSlot:      record.TimeSlot,
		TotalAmount:   record.TotalAmount,
		CreatedAt:     record.CreatedAt,
	}, nil
}

// failSubmission фиксирует неудачную отправку
// Черновик остаётся нетронутым, флаг отправки снимается, под ключом
// "submit" сохраняется единственное человекочитаемое сообщение
func (uc *UseCase) failSubmission(ctx context.Context, session *domain.CheckoutSession, cause error) error {
	message := submitErrorMessage(cause)

	uc.logger.Warn("SubmitBooking: submission failed for session %s: %v", session.PublicID, cause)

	session.Wizard.SubmissionInFlight = false
	session.Wizard.Errors = domain.FieldErrors{domain.SubmitErrorKey: message}

	if err := uc.sessionRepo.Update(ctx, session); err != nil {
		uc.logger.Error("SubmitBooking: failed to save submit error for session %s: %v",
			session.PublicID, err)
	}

	return &SubmissionError{Message: message}
}
