package domain

// Ценовые константы
const (
	// VisitCharge фиксированная плата за выезд мастера
	// Применяется ко всем заказам независимо от типа услуги и адреса
	VisitCharge = 300.0

	// TaxRate ставка налога
	// По текущей политике равна нулю, но поле сохраняется в расчёте,
	// чтобы будущая налоговая схема не затронула вызывающий код
	TaxRate = 0.0
)

// Ограничения на данные черновика
const (
	DefaultQuantity = 1
	MaxQuantity     = 50

	MaxInstructionsLength = 500
	MaxMaterialsCount     = 20
)

// Названия секций черновика
// Используются как первая часть ключа ошибки "section.field"
const (
	SectionQuantity     = "quantity"
	SectionCustomerInfo = "customerInfo"
	SectionAddress      = "serviceAddress"
	SectionScheduling   = "scheduling"
	SectionRequirements = "requirements"
	SectionPayment      = "payment"
)

// SubmitErrorKey ключ единственной не-полевой ошибки отправки
const SubmitErrorKey = "submit"

// Форматы дат
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
