package domain

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrUnknownSection возвращается при обновлении несуществующей секции черновика
	ErrUnknownSection = errors.New("domain: unknown draft section")

	// ErrUnknownField возвращается при обновлении несуществующего поля секции
	ErrUnknownField = errors.New("domain: unknown draft field")

	// ErrInvalidFieldValue возвращается, когда значение поля не проходит структурную проверку
	// (например, количество не является положительным целым числом)
	ErrInvalidFieldValue = errors.New("domain: invalid field value")
)

// PaymentMethod способ оплаты заказа
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
	// PaymentMethodCard присутствует в интерфейсе, но обрабатывается вне сервиса
	// (оплата по отсканированному коду)
	PaymentMethodCard PaymentMethod = "card"
)

// IsValid возвращает true для поддерживаемого способа оплаты
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodUPI || m == PaymentMethodCard
}

// CustomerInfo контактные данные клиента (шаг 1)
type CustomerInfo struct {
	Name           string
	Email          string
	Phone          string
	AlternatePhone string
}

// ServiceAddress адрес оказания услуги (шаг 2)
type ServiceAddress struct {
	Street       string
	City         string
	State        string
	ZipCode      string
	Landmark     string
	Instructions string
}

// Scheduling предпочтительное расписание визита (шаг 3)
// Дата хранится строкой в формате YYYY-MM-DD ровно так, как её ввёл клиент;
// разбор и проверка выполняются валидатором шага
type Scheduling struct {
	PreferredDate     string
	PreferredTimeSlot TimeSlot
}

// Requirements дополнительные требования к заказу
type Requirements struct {
	SpecialInstructions string
	Materials           []string
}

// Payment параметры оплаты
type Payment struct {
	Method PaymentMethod
}

// BookingDraft накопленные данные многошагового оформления заказа
// Принадлежит исключительно одному экземпляру Wizard и изменяется
// только через его операции обновления
type BookingDraft struct {
	Quantity     int
	CustomerInfo CustomerInfo
	Address      ServiceAddress
	Scheduling   Scheduling
	Requirements Requirements
	Payment      Payment
}

// CustomerSeed данные профиля клиента для первичного заполнения черновика
// Снимок снимается один раз при создании сессии и копируется, а не алиасится:
// последующие изменения профиля не влияют на начатый черновик
type CustomerSeed struct {
	Name    string
	Email   string
	Phone   string
	Street  string
	City    string
	State   string
	ZipCode string
}

// NewDraft создает черновик с дефолтными значениями,
// заполняя контакты и адрес из профиля клиента
func NewDraft(seed CustomerSeed) *BookingDraft {
	return &BookingDraft{
		Quantity: DefaultQuantity,
		CustomerInfo: CustomerInfo{
			Name:  seed.Name,
			Email: seed.Email,
			Phone: seed.Phone,
		},
		Address: ServiceAddress{
			Street:  seed.Street,
			City:    seed.City,
			State:   seed.State,
			ZipCode: seed.ZipCode,
		},
		Payment: Payment{Method: PaymentMethodCash},
	}
}

// Clone возвращает глубокую копию черновика
// Копия нужна для copy-on-write обновлений: ранее выданные снимки черновика
// остаются валидными после любых последующих изменений
func (d *BookingDraft) Clone() *BookingDraft {
	clone := *d
	if d.Requirements.Materials != nil {
		clone.Requirements.Materials = make([]string, len(d.Requirements.Materials))
		copy(clone.Requirements.Materials, d.Requirements.Materials)
	}
	return &clone
}

// WithField возвращает копию черновика с обновлённым значением одного поля
// Исходный черновик не изменяется
func (d *BookingDraft) WithField(section, field, value string) (*BookingDraft, error) {
	clone := d.Clone()

	switch section {
	case SectionQuantity:
		quantity, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || quantity < 1 || quantity > MaxQuantity {
			return nil, ErrInvalidFieldValue
		}
		clone.Quantity = quantity

	case SectionCustomerInfo:
		switch field {
		case "name":
			clone.CustomerInfo.Name = value
		case "email":
			clone.CustomerInfo.Email = value
		case "phone":
			clone.CustomerInfo.Phone = value
		case "alternatePhone":
			clone.CustomerInfo.AlternatePhone = value
		default:
			return nil, ErrUnknownField
		}

	case SectionAddress:
		switch field {
		case "street":
			clone.Address.Street = value
		case "city":
			clone.Address.City = value
		case "state":
			clone.Address.State = value
		case "zipCode":
			clone.Address.ZipCode = value
		case "landmark":
			clone.Address.Landmark = value
		case "instructions":
			clone.Address.Instructions = value
		default:
			return nil, ErrUnknownField
		}

	case SectionScheduling:
		switch field {
		case "preferredDate":
			clone.Scheduling.PreferredDate = strings.TrimSpace(value)
		case "preferredTimeSlot":
			clone.Scheduling.PreferredTimeSlot = TimeSlot(value)
		default:
			return nil, ErrUnknownField
		}

	case SectionRequirements:
		switch field {
		case "specialInstructions":
			if len(value) > MaxInstructionsLength {
				return nil, ErrInvalidFieldValue
			}
			clone.Requirements.SpecialInstructions = value
		case "materials":
			materials := splitMaterials(value)
			if len(materials) > MaxMaterialsCount {
				return nil, ErrInvalidFieldValue
			}
			clone.Requirements.Materials = materials
		default:
			return nil, ErrUnknownField
		}

	case SectionPayment:
		switch field {
		case "method":
			method := PaymentMethod(value)
			if !method.IsValid() {
				return nil, ErrInvalidFieldValue
			}
			clone.Payment.Method = method
		default:
			return nil, ErrUnknownField
		}

	default:
		return nil, ErrUnknownSection
	}

	return clone, nil
}

// splitMaterials разбирает список материалов из строки с разделителем-запятой
// Пустые элементы отбрасываются
func splitMaterials(value string) []string {
	parts := strings.Split(value, ",")
	materials := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			materials = append(materials, trimmed)
		}
	}
	return materials
}
