package submit_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
	sessionRepo "github.com/USMarket/USM-CheckoutService/internal/infra/storage/session"
	"github.com/USMarket/USM-CheckoutService/internal/integrations/bookingservice"
	"github.com/USMarket/USM-CheckoutService/pkg/ptr"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubTimeProvider struct {
	now time.Time
}

func (p *stubTimeProvider) Now() time.Time {
	return p.now
}

// stubSessionRepo репозиторий на одной сессии в памяти
type stubSessionRepo struct {
	session *domain.CheckoutSession

	updateErr   error
	inFlightErr error

	updates        int
	inFlightCalls  []bool
	updatedSession *domain.CheckoutSession
}

func (r *stubSessionRepo) GetByPublicID(_ context.Context, publicID uuid.UUID) (*domain.CheckoutSession, error) {
	if r.session == nil || r.session.PublicID != publicID {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return r.session, nil
}

func (r *stubSessionRepo) Update(ctx context.Context, s *domain.CheckoutSession) error {
	// database/sql отклоняет запросы по отменённому контексту
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates++
	r.updatedSession = s
	return nil
}

func (r *stubSessionRepo) SetSubmissionInFlight(_ context.Context, _ int64, inFlight bool) error {
	if r.inFlightErr != nil {
		return r.inFlightErr
	}
	r.inFlightCalls = append(r.inFlightCalls, inFlight)
	return nil
}

type stubBookingClient struct {
	record *bookingservice.BookingRecord
	err    error
	calls  int
}

func (c *stubBookingClient) CreateBooking(_ context.Context, _ *domain.BookingRequest) (*bookingservice.BookingRecord, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.record, nil
}

// cancelingBookingClient обрывает запросный контекст перед ответом,
// имитируя уход клиента посреди отправки
type cancelingBookingClient struct {
	cancel context.CancelFunc
	err    error
	record *bookingservice.BookingRecord
	calls  int
}

func (c *cancelingBookingClient) CreateBooking(_ context.Context, _ *domain.BookingRequest) (*bookingservice.BookingRecord, error) {
	c.calls++
	c.cancel()
	if c.err != nil {
		return nil, c.err
	}
	return c.record, nil
}

// stubTxManager выполняет функцию без реальной транзакции
type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// confirmSession сессия на шаге подтверждения с полностью валидным черновиком
func confirmSession() *domain.CheckoutSession {
	wizard := domain.NewWizard(domain.CustomerSeed{
		Name:    "Иван Петров",
		Email:   "ivan@example.com",
		Phone:   "+79990001122",
		Street:  "ул. Ленина, 10",
		City:    "Москва",
		State:   "Московская область",
		ZipCode: "101000",
	})
	if err := wizard.UpdateField(domain.SectionScheduling, "preferredDate", "2025-06-20"); err != nil {
		panic(err)
	}
	if err := wizard.UpdateField(domain.SectionScheduling, "preferredTimeSlot", "11:00-13:00"); err != nil {
		panic(err)
	}
	for wizard.CurrentStep != domain.StepConfirm {
		if !wizard.Advance(testNow) {
			panic("test session draft is not valid")
		}
	}

	return &domain.CheckoutSession{
		ID:            42,
		PublicID:      uuid.New(),
		UserID:        7,
		ServiceID:     100,
		ServiceName:   "Глубокая уборка",
		BasePrice:     ptr.Ptr(1000.0),
		DiscountPrice: ptr.Ptr(800.0),
		ProviderID:    55,
		Wizard:        *wizard,
		Status:        domain.SessionStatusActive,
	}
}

func newTestUseCase(repo *stubSessionRepo, client *stubBookingClient) *UseCase {
	uc := NewUseCase(repo, client, stubTxManager{}, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	session := confirmSession()
	repo := &stubSessionRepo{session: session}
	client := &stubBookingClient{
		record: &bookingservice.BookingRecord{
			ID:            9001,
			Status:        "pending",
			PreferredDate: "2025-06-20",
			TimeSlot:      "11:00-13:00",
			TotalAmount:   1100,
			CreatedAt:     testNow,
		},
	}
	uc := newTestUseCase(repo, client)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, SessionID: session.PublicID})

	require.NoError(t, err)
	assert.Equal(t, int64(9001), resp.BookingID)
	assert.Equal(t, session.PublicID.String(), resp.SessionID)
	assert.Equal(t, "pending", resp.Status)

	assert.Equal(t, 1, client.calls, "ровно один вызов создания бронирования")
	assert.Equal(t, []bool{true}, repo.inFlightCalls)
	assert.Equal(t, domain.SessionStatusCompleted, session.Status)
	assert.False(t, session.Wizard.SubmissionInFlight)
	assert.Empty(t, session.Wizard.Errors)
	assert.Equal(t, 1, repo.updates)
}

func TestExecute_BookingServiceError_PreservesDraft(t *testing.T) {
	session := confirmSession()
	draftBefore := *session.Wizard.Draft

	repo := &stubSessionRepo{session: session}
	client := &stubBookingClient{
		err: &bookingservice.APIError{
			StatusCode: 409,
			Message:    "выбранный слот недоступен",
		},
	}
	uc := newTestUseCase(repo, client)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, SessionID: session.PublicID})

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "выбранный слот недоступен", subErr.Message)

	// Черновик байт в байт тот же, ошибка лежит под ключом "submit"
	assert.Equal(t, draftBefore, *session.Wizard.Draft)
	assert.Equal(t, domain.FieldErrors{domain.SubmitErrorKey: "выбранный слот недоступен"}, session.Wizard.Errors)
	assert.False(t, session.Wizard.SubmissionInFlight)
	assert.Equal(t, domain.SessionStatusActive, session.Status)
}

func TestExecute_TransportError_UsesErrorText(t *testing.T) {
	session := confirmSession()
	repo := &stubSessionRepo{session: session}
	client := &stubBookingClient{err: errors.New("connection refused")}
	uc := newTestUseCase(repo, client)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, SessionID: session.PublicID})

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "connection refused", subErr.Message)
}

func TestExecute_APIErrorWithoutMessage_Fallback(t *testing.T) {
	session := confirmSession()
	repo := &stubSessionRepo{session: session}
	client := &stubBookingClient{err: &bookingservice.APIError{StatusCode: 500}}
	uc := newTestUseCase(repo, client)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, SessionID: session.PublicID})

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, msgSubmitFallback, subErr.Message)
}

func TestExecute_ClientGoneDuringFailedSubmit_FlagStillCleared(t *testing.T) {
	session := confirmSession()
	repo := &stubSessionRepo{session: session}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client := &cancelingBookingClient{
		cancel: cancel,
		err: &bookingservice.APIError{
			StatusCode: 409,
			Message:    "выбранный слот недоступен",
		},
	}

	uc := NewUseCase(repo, client, stubTxManager{}, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: testNow}

	_, err := uc.Execute(ctx, &Request{UserID: 7, SessionID: session.PublicID})

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)

	// Итоговое состояние сохранено несмотря на отменённый запросный контекст
	assert.Equal(t, 1, repo.updates)
	assert.False(t, session.Wizard.SubmissionInFlight)
	assert.Equal(t, domain.FieldErrors{domain.SubmitErrorKey: "выбранный слот недоступен"}, session.Wizard.Errors)

	// Повторная отправка со свежим контекстом проходит guard и доходит до клиента
	retryClient := &stubBookingClient{
		record: &bookingservice.BookingRecord{ID: 9002, Status: "pending", CreatedAt: testNow},
	}
	retryUC := newTestUseCase(repo, retryClient)

	resp, err := retryUC.Execute(context.Background(), &Request{UserID: 7, SessionID: session.PublicID})

	require.NoError(t, err)
	assert.Equal(t, int64(9002), resp.BookingID)
	assert.Equal(t, 1, retryClient.calls)
}

func TestExecute_ClientGoneDuringSuccessfulSubmit_SessionFinalized(t *testing.T) {
	session := confirmSession()
	repo := &stubSessionRepo{session: session}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client := &cancelingBookingClient{
		cancel: cancel,
		record: &bookingservice.BookingRecord{ID: 9001, Status: "pending", CreatedAt: testNow},
	}

	uc := NewUseCase(repo, client, stubTxManager{}, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: testNow}

	resp, err := uc.Execute(ctx, &Request{UserID: 7, SessionID: session.PublicID})

	require.NoError(t, err)
	assert.Equal(t, int64(9001), resp.BookingID)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, domain.SessionStatusCompleted, session.Status)
	assert.False(t, session.Wizard.SubmissionInFlight)
}

func TestExecute_SubmissionInFlight_NoSecondCall(t *testing.T) {
	session := confirmSession()
	session.Wizard.SubmissionInFlight = true

	repo := &stubSessionRepo{session: session}
	client := &stubBookingClient{}
	uc := newTestUseCase(repo, client)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, SessionID: session.PublicID})

	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Zero(t, client.calls, "повторный клик не порождает второй вызов")
}

func TestExecute_NotAtConfirmStep(t *testing.T) {
	session := confirmSession()
	session.Wizard.Retreat()

	repo := &stubSessionRepo{session: session}
	client := &stubBookingClient{}
	uc := newTestUseCase(repo, client)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, SessionID: session.PublicID})

	assert.ErrorIs(t, err, ErrNotAtConfirmStep)
	assert.Zero(t, client.calls)
}

func TestExecute_RevalidationFailure(t *testing.T) {
	session := confirmSession()
	// Дата визита прошла, пока пользователь держал сессию открытой
	session.Wizard.Draft.Scheduling.PreferredDate = "2025-06-10"

	repo := &stubSessionRepo{session: session}
	client := &stubBookingClient{}
	uc := newTestUseCase(repo, client)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, SessionID: session.PublicID})

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Zero(t, client.calls)
	assert.Contains(t, session.Wizard.Errors, "scheduling.preferredDate")
	assert.Equal(t, 1, repo.updates, "ошибки валидации сохраняются")
}

func TestExecute_SessionCompleted(t *testing.T) {
	session := confirmSession()
	session.Status = domain.SessionStatusCompleted

	repo := &stubSessionRepo{session: session}
	uc := newTestUseCase(repo, &stubBookingClient{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, SessionID: session.PublicID})

	assert.ErrorIs(t, err, ErrSessionCompleted)
}

func TestExecute_AccessDenied(t *testing.T) {
	session := confirmSession()
	repo := &stubSessionRepo{session: session}
	uc := newTestUseCase(repo, &stubBookingClient{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 999, SessionID: session.PublicID})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_SessionNotFound(t *testing.T) {
	repo := &stubSessionRepo{}
	uc := newTestUseCase(repo, &stubBookingClient{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, SessionID: uuid.New()})

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&stubSessionRepo{}, &stubBookingClient{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 0, SessionID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 7, SessionID: uuid.Nil})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
