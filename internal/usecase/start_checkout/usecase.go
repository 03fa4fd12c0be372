package start_checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
	sessionRepo "github.com/USMarket/USM-CheckoutService/internal/infra/storage/session"
	catalogClient "github.com/USMarket/USM-CheckoutService/internal/integrations/catalogservice"
	profileClient "github.com/USMarket/USM-CheckoutService/internal/integrations/profileservice"
	checkoutModels "github.com/USMarket/USM-CheckoutService/internal/service/checkout/models"
)

// UseCase use case для создания сессии оформления заказа
type UseCase struct {
	sessionRepo   SessionRepository
	profileClient ProfileServiceClient
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	profileClient ProfileServiceClient,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:   sessionRepo,
		profileClient: profileClient,
		catalogClient: catalogClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет use case создания сессии оформления
//
// Прекондиции проверяются до создания сессии: профиль клиента и услуга
// должны существовать. Если у пользователя уже есть активная сессия для
// этой услуги, она возобновляется вместо создания дубликата - начатый
// черновик не теряется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("StartCheckout: user=%d, service=%d", req.UserID, req.ServiceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("StartCheckout: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем профиль клиента
	// Отсутствие профиля - фатальная прекондиция: сессия не создаётся
	customer, err := uc.profileClient.GetCurrentCustomer(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, profileClient.ErrProfileNotFound) {
			uc.logger.Warn("StartCheckout: profile for user=%d not found", req.UserID)
			return nil, ErrProfileNotFound
		}
		uc.logger.Error("StartCheckout: failed to get profile for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get customer profile: %v", ErrInternal, err)
	}

	// 3. Получаем услугу из каталога
	offering, err := uc.catalogClient.GetServiceOffering(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrOfferingNotFound) {
			uc.logger.Warn("StartCheckout: service id=%d not found", req.ServiceID)
			return nil, ErrOfferingNotFound
		}
		uc.logger.Error("StartCheckout: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service offering: %v", ErrInternal, err)
	}

	// Неактивная услуга недоступна для оформления
	if !offering.IsActive {
		uc.logger.Warn("StartCheckout: service id=%d is inactive", req.ServiceID)
		return nil, ErrOfferingNotFound
	}

	// 4. Проверяем инвариант цен услуги
	if err := validateOffering(offering); err != nil {
		uc.logger.Error("StartCheckout: offering id=%d violates pricing invariant: %v", req.ServiceID, err)
		return nil, err
	}

	var (
		result  *domain.CheckoutSession
		resumed bool
	)

	// 5. Создаём сессию в сериализуемой транзакции: два параллельных старта
	// не должны породить две активные сессии для одной услуги
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Ищем уже начатую активную сессию
		existing, err := uc.sessionRepo.GetActiveByUserAndService(txCtx, req.UserID, req.ServiceID)
		if err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Error("StartCheckout: failed to look up active session: %v", err)
			return fmt.Errorf("%w: failed to look up active session: %v", ErrInternal, err)
		}

		if existing != nil {
			uc.logger.Info("StartCheckout: resuming session %s for user=%d", existing.PublicID, req.UserID)
			result = existing
			resumed = true
			return nil
		}

		// 5.2. Создаём новую сессию: черновик заполняется из профиля
		// (односторонняя копия), услуга денормализуется в снимок
		session := &domain.CheckoutSession{
			PublicID:        uuid.New(),
			UserID:          req.UserID,
			ServiceID:       offering.ID,
			ServiceName:     offering.Name,
			BasePrice:       offering.BasePrice,
			DiscountPrice:   offering.DiscountPrice,
			DurationMinutes: offering.DurationMinutes,
			ProviderID:      offering.ProviderID,
			Wizard: *domain.NewWizard(domain.CustomerSeed{
				Name:    customer.Name,
				Email:   customer.Email,
				Phone:   customer.Phone,
				Street:  customer.Address.Street,
				City:    customer.Address.City,
				State:   customer.Address.State,
				ZipCode: customer.Address.ZipCode,
			}),
			Status: domain.SessionStatusActive,
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("StartCheckout: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if !resumed {
		uc.logger.Info("StartCheckout: created session %s for user=%d, service=%d",
			result.PublicID, req.UserID, req.ServiceID)
	}

	return &Response{
		Session: checkoutModels.FromDomainSession(result),
		Resumed: resumed,
	}, nil
}
