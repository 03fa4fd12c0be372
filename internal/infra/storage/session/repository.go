package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
	"github.com/USMarket/USM-CheckoutService/pkg/dbmetrics"
	"github.com/USMarket/USM-CheckoutService/pkg/psqlbuilder"
)

// sessionColumns полный набор колонок таблицы checkout_sessions
// Порядок колонок согласован со scanSession
var sessionColumns = []string{
	"id",
	"public_id",
	"user_id",
	"service_id",
	"service_name",
	"base_price",
	"discount_price",
	"duration_minutes",
	"provider_id",
	"current_step",
	"quantity",
	"customer_name",
	"customer_email",
	"customer_phone",
	"customer_alt_phone",
	"addr_street",
	"addr_city",
	"addr_state",
	"addr_zip",
	"addr_landmark",
	"addr_instructions",
	"preferred_date",
	"preferred_time_slot",
	"special_instructions",
	"materials",
	"payment_method",
	"field_errors",
	"submission_in_flight",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сессиями оформления заказа
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию оформления
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, s *domain.CheckoutSession) (*domain.CheckoutSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	materials, fieldErrors, err := encodeState(s)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("checkout_sessions").
		Columns(
			"public_id",
			"user_id",
			"service_id",
			"service_name",
			"base_price",
			"discount_price",
			"duration_minutes",
			"provider_id",
			"current_step",
			"quantity",
			"customer_name",
			"customer_email",
			"customer_phone",
			"customer_alt_phone",
			"addr_street",
			"addr_city",
			"addr_state",
			"addr_zip",
			"addr_landmark",
			"addr_instructions",
			"preferred_date",
			"preferred_time_slot",
			"special_instructions",
			"materials",
			"payment_method",
			"field_errors",
			"submission_in_flight",
			"status",
		).
		Values(
			s.PublicID,
			s.UserID,
			s.ServiceID,
			s.ServiceName,
			s.BasePrice,
			s.DiscountPrice,
			s.DurationMinutes,
			s.ProviderID,
			int(s.Wizard.CurrentStep),
			s.Wizard.Draft.Quantity,
			s.Wizard.Draft.CustomerInfo.Name,
			s.Wizard.Draft.CustomerInfo.Email,
			s.Wizard.Draft.CustomerInfo.Phone,
			s.Wizard.Draft.CustomerInfo.AlternatePhone,
			s.Wizard.Draft.Address.Street,
			s.Wizard.Draft.Address.City,
			s.Wizard.Draft.Address.State,
			s.Wizard.Draft.Address.ZipCode,
			s.Wizard.Draft.Address.Landmark,
			s.Wizard.Draft.Address.Instructions,
			s.Wizard.Draft.Scheduling.PreferredDate,
			string(s.Wizard.Draft.Scheduling.PreferredTimeSlot),
			s.Wizard.Draft.Requirements.SpecialInstructions,
			materials,
			string(s.Wizard.Draft.Payment.Method),
			fieldErrors,
			s.Wizard.SubmissionInFlight,
			string(s.Status),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByPublicID получает сессию по публичному идентификатору
func (r *Repository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.CheckoutSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("checkout_sessions").
		Where(squirrel.Eq{"public_id": publicID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPublicID - build select query: %v", ErrBuildQuery, err)
	}

	return scanSession(executor.QueryRowContext(ctx, query, args...), "GetByPublicID")
}

// GetActiveByUserAndService получает активную сессию пользователя для услуги
// Используется для возобновления начатого оформления вместо создания дубликата
func (r *Repository) GetActiveByUserAndService(ctx context.Context, userID, serviceID int64) (*domain.CheckoutSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("checkout_sessions").
		Where(squirrel.Eq{
			"user_id":    userID,
			"service_id": serviceID,
			"status":     string(domain.SessionStatusActive),
		}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUserAndService - build select query: %v", ErrBuildQuery, err)
	}

	return scanSession(executor.QueryRowContext(ctx, query, args...), "GetActiveByUserAndService")
}

// Update сохраняет изменяемое состояние сессии
// (шаг, черновик, ошибки, флаг отправки, статус)
func (r *Repository) Update(ctx context.Context, s *domain.CheckoutSession) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	materials, fieldErrors, err := encodeState(s)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("checkout_sessions").
		Set("current_step", int(s.Wizard.CurrentStep)).
		Set("quantity", s.Wizard.Draft.Quantity).
		Set("customer_name", s.Wizard.Draft.CustomerInfo.Name).
		Set("customer_email", s.Wizard.Draft.CustomerInfo.Email).
		Set("customer_phone", s.Wizard.Draft.CustomerInfo.Phone).
		Set("customer_alt_phone", s.Wizard.Draft.CustomerInfo.AlternatePhone).
		Set("addr_street", s.Wizard.Draft.Address.Street).
		Set("addr_city", s.Wizard.Draft.Address.City).
		Set("addr_state", s.Wizard.Draft.Address.State).
		Set("addr_zip", s.Wizard.Draft.Address.ZipCode).
		Set("addr_landmark", s.Wizard.Draft.Address.Landmark).
		Set("addr_instructions", s.Wizard.Draft.Address.Instructions).
		Set("preferred_date", s.Wizard.Draft.Scheduling.PreferredDate).
		Set("preferred_time_slot", string(s.Wizard.Draft.Scheduling.PreferredTimeSlot)).
		Set("special_instructions", s.Wizard.Draft.Requirements.SpecialInstructions).
		Set("materials", materials).
		Set("payment_method", string(s.Wizard.Draft.Payment.Method)).
		Set("field_errors", fieldErrors).
		Set("submission_in_flight", s.Wizard.SubmissionInFlight).
		Set("status", string(s.Status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// SetSubmissionInFlight выставляет флаг незавершённой отправки
// Вызывается внутри сериализуемой транзакции submit-сценария,
// что и обеспечивает идемпотентную защиту от повторного клика
func (r *Repository) SetSubmissionInFlight(ctx context.Context, id int64, inFlight bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("checkout_sessions").
		Set("submission_in_flight", inFlight).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetSubmissionInFlight - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetSubmissionInFlight - execute update: %v", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetSubmissionInFlight - rows affected: %v", ErrExecQuery, err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// encodeState сериализует JSONB-поля сессии
func encodeState(s *domain.CheckoutSession) (materials []byte, fieldErrors []byte, err error) {
	materials, err = json.Marshal(s.Wizard.Draft.Requirements.Materials)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: materials: %v", ErrEncodeState, err)
	}

	fieldErrors, err = json.Marshal(s.Wizard.Errors)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: field errors: %v", ErrEncodeState, err)
	}

	return materials, fieldErrors, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSession сканирует строку таблицы checkout_sessions в domain-модель
func scanSession(row rowScanner, op string) (*domain.CheckoutSession, error) {
	var (
		s             domain.CheckoutSession
		draft         domain.BookingDraft
		currentStep   int
		timeSlot      string
		paymentMethod string
		materials     []byte
		fieldErrors   []byte
		inFlight      bool
		status        string
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.PublicID,
		&s.UserID,
		&s.ServiceID,
		&s.ServiceName,
		&s.BasePrice,
		&s.DiscountPrice,
		&s.DurationMinutes,
		&s.ProviderID,
		&currentStep,
		&draft.Quantity,
		&draft.CustomerInfo.Name,
		&draft.CustomerInfo.Email,
		&draft.CustomerInfo.Phone,
		&draft.CustomerInfo.AlternatePhone,
		&draft.Address.Street,
		&draft.Address.City,
		&draft.Address.State,
		&draft.Address.ZipCode,
		&draft.Address.Landmark,
		&draft.Address.Instructions,
		&draft.Scheduling.PreferredDate,
		&timeSlot,
		&draft.Requirements.SpecialInstructions,
		&materials,
		&paymentMethod,
		&fieldErrors,
		&inFlight,
		&status,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan session: %v", ErrScanRow, op, err)
	}

	draft.Scheduling.PreferredTimeSlot = domain.TimeSlot(timeSlot)
	draft.Payment.Method = domain.PaymentMethod(paymentMethod)

	if len(materials) > 0 {
		if err := json.Unmarshal(materials, &draft.Requirements.Materials); err != nil {
			return nil, fmt.Errorf("%w: %s - materials: %v", ErrDecodeState, op, err)
		}
	}

	errs := domain.FieldErrors{}
	if len(fieldErrors) > 0 {
		if err := json.Unmarshal(fieldErrors, &errs); err != nil {
			return nil, fmt.Errorf("%w: %s - field errors: %v", ErrDecodeState, op, err)
		}
	}

	s.Wizard = domain.Wizard{
		CurrentStep:        domain.WizardStep(currentStep),
		Draft:              &draft,
		Errors:             errs,
		SubmissionInFlight: inFlight,
	}
	s.Status = domain.SessionStatus(status)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
