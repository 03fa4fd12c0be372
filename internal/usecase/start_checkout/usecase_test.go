package start_checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
	sessionRepo "github.com/USMarket/USM-CheckoutService/internal/infra/storage/session"
	"github.com/USMarket/USM-CheckoutService/internal/integrations/catalogservice"
	"github.com/USMarket/USM-CheckoutService/internal/integrations/profileservice"
	"github.com/USMarket/USM-CheckoutService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubSessionRepo struct {
	active *domain.CheckoutSession

	created *domain.CheckoutSession
	creates int
}

func (r *stubSessionRepo) GetActiveByUserAndService(_ context.Context, userID, serviceID int64) (*domain.CheckoutSession, error) {
	if r.active != nil && r.active.UserID == userID && r.active.ServiceID == serviceID {
		return r.active, nil
	}
	return nil, sessionRepo.ErrSessionNotFound
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.CheckoutSession) (*domain.CheckoutSession, error) {
	r.creates++
	created := *s
	created.ID = 1
	r.created = &created
	return &created, nil
}

type stubProfileClient struct {
	customer *profileservice.Customer
	err      error
}

func (c *stubProfileClient) GetCurrentCustomer(_ context.Context, _ int64) (*profileservice.Customer, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.customer, nil
}

type stubCatalogClient struct {
	offering *catalogservice.ServiceOffering
	err      error
}

func (c *stubCatalogClient) GetServiceOffering(_ context.Context, _ int64) (*catalogservice.ServiceOffering, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.offering, nil
}

func testCustomer() *profileservice.Customer {
	return &profileservice.Customer{
		ID:    7,
		Name:  "Иван Петров",
		Email: "ivan@example.com",
		Phone: "+79990001122",
		Address: profileservice.Address{
			Street:  "ул. Ленина, 10",
			City:    "Москва",
			State:   "Московская область",
			ZipCode: "101000",
		},
	}
}

func testOffering() *catalogservice.ServiceOffering {
	return &catalogservice.ServiceOffering{
		ID:              100,
		Name:            "Глубокая уборка",
		BasePrice:       ptr.Ptr(1000.0),
		DiscountPrice:   ptr.Ptr(800.0),
		DurationMinutes: 120,
		ProviderID:      55,
		IsActive:        true,
	}
}

func TestExecute_CreatesSessionSeededFromProfile(t *testing.T) {
	repo := &stubSessionRepo{}
	uc := NewUseCase(repo,
		&stubProfileClient{customer: testCustomer()},
		&stubCatalogClient{offering: testOffering()},
		stubTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, ServiceID: 100})

	require.NoError(t, err)
	assert.False(t, resp.Resumed)
	require.Equal(t, 1, repo.creates)

	created := repo.created
	assert.NotEqual(t, uuid.Nil, created.PublicID)
	assert.Equal(t, domain.SessionStatusActive, created.Status)
	assert.Equal(t, domain.StepContactInfo, created.Wizard.CurrentStep)

	// Черновик заполнен из профиля
	assert.Equal(t, "Иван Петров", created.Wizard.Draft.CustomerInfo.Name)
	assert.Equal(t, "ул. Ленина, 10", created.Wizard.Draft.Address.Street)

	// Снимок услуги денормализован в сессию
	assert.Equal(t, "Глубокая уборка", created.ServiceName)
	assert.Equal(t, 800.0, *created.DiscountPrice)
	assert.Equal(t, int64(55), created.ProviderID)

	// В ответе свежий расчёт стоимости и размер скидки
	assert.Equal(t, 800.0+domain.VisitCharge, resp.Session.Pricing.Total)
	assert.Equal(t, 20, resp.Session.Service.DiscountPercent)
}

func TestExecute_ResumesExistingActiveSession(t *testing.T) {
	existing := &domain.CheckoutSession{
		ID:        3,
		PublicID:  uuid.New(),
		UserID:    7,
		ServiceID: 100,
		BasePrice: ptr.Ptr(1000.0),
		Wizard:    *domain.NewWizard(domain.CustomerSeed{Name: "Иван"}),
		Status:    domain.SessionStatusActive,
	}
	existing.Wizard.CurrentStep = domain.StepAddress

	repo := &stubSessionRepo{active: existing}
	uc := NewUseCase(repo,
		&stubProfileClient{customer: testCustomer()},
		&stubCatalogClient{offering: testOffering()},
		stubTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, ServiceID: 100})

	require.NoError(t, err)
	assert.True(t, resp.Resumed)
	assert.Zero(t, repo.creates, "дубликат активной сессии не создаётся")
	assert.Equal(t, existing.PublicID.String(), resp.Session.SessionID)
	assert.Equal(t, 2, resp.Session.CurrentStep, "начатый черновик не теряется")
}

func TestExecute_ProfileNotFound(t *testing.T) {
	repo := &stubSessionRepo{}
	uc := NewUseCase(repo,
		&stubProfileClient{err: profileservice.ErrProfileNotFound},
		&stubCatalogClient{offering: testOffering()},
		stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ServiceID: 100})

	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Zero(t, repo.creates, "сессия без профиля не создаётся")
}

func TestExecute_OfferingNotFound(t *testing.T) {
	uc := NewUseCase(&stubSessionRepo{},
		&stubProfileClient{customer: testCustomer()},
		&stubCatalogClient{err: catalogservice.ErrOfferingNotFound},
		stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ServiceID: 100})

	assert.ErrorIs(t, err, ErrOfferingNotFound)
}

func TestExecute_InactiveOfferingTreatedAsNotFound(t *testing.T) {
	offering := testOffering()
	offering.IsActive = false

	uc := NewUseCase(&stubSessionRepo{},
		&stubProfileClient{customer: testCustomer()},
		&stubCatalogClient{offering: offering},
		stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ServiceID: 100})

	assert.ErrorIs(t, err, ErrOfferingNotFound)
}

func TestExecute_OfferingPricingInvariantViolated(t *testing.T) {
	offering := testOffering()
	offering.DiscountPrice = ptr.Ptr(1500.0)

	uc := NewUseCase(&stubSessionRepo{},
		&stubProfileClient{customer: testCustomer()},
		&stubCatalogClient{offering: offering},
		stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ServiceID: 100})

	assert.ErrorIs(t, err, ErrOfferingInvalid)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&stubSessionRepo{},
		&stubProfileClient{customer: testCustomer()},
		&stubCatalogClient{offering: testOffering()},
		stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 0, ServiceID: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 7, ServiceID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
