package domain

import "math"

// ServiceOffering услуга из каталога (внешние данные, только для чтения)
// Инвариант: цена со скидкой, если указана, не превышает базовую
type ServiceOffering struct {
	ID              int64
	Name            string
	BasePrice       *float64
	DiscountPrice   *float64
	DurationMinutes int
	ProviderID      int64
}

// UnitPrice возвращает действующую цену за единицу услуги
// Приоритет: цена со скидкой, затем базовая цена, иначе 0
func (o *ServiceOffering) UnitPrice() float64 {
	if o.DiscountPrice != nil {
		return *o.DiscountPrice
	}
	if o.BasePrice != nil {
		return *o.BasePrice
	}
	return 0
}

// HasDiscount возвращает true, если у услуги есть цена со скидкой
func (o *ServiceOffering) HasDiscount() bool {
	return o.DiscountPrice != nil
}

// PricingSnapshot производный расчёт стоимости заказа
// Никогда не сохраняется внутри черновика - пересчитывается из
// (услуга, количество) при каждом чтении, чтобы исключить расхождение
// при изменении количества
type PricingSnapshot struct {
	Subtotal    float64
	VisitCharge float64
	Taxes       float64
	Total       float64
}

// ComputePricing вычисляет стоимость заказа
// Чистая функция: одинаковые аргументы всегда дают одинаковый результат.
// Всегда выполняется тождество Total == Subtotal + VisitCharge + Taxes
func ComputePricing(offering *ServiceOffering, quantity int) PricingSnapshot {
	subtotal := offering.UnitPrice() * float64(quantity)
	taxes := computeTaxes(subtotal)

	return PricingSnapshot{
		Subtotal:    subtotal,
		VisitCharge: VisitCharge,
		Taxes:       taxes,
		Total:       subtotal + VisitCharge + taxes,
	}
}

// computeTaxes вычисляет налог с промежуточной суммы
// Ставка сейчас нулевая; функция оставлена отдельной точкой замены
// для будущей налоговой схемы
func computeTaxes(subtotal float64) float64 {
	return subtotal * TaxRate
}

// DiscountPercent возвращает размер скидки в процентах для отображения
// Определён только когда есть цена со скидкой и базовая цена положительна,
// иначе возвращает 0
func DiscountPercent(offering *ServiceOffering) int {
	if offering.DiscountPrice == nil || offering.BasePrice == nil || *offering.BasePrice <= 0 {
		return 0
	}
	return int(math.Round((*offering.BasePrice - *offering.DiscountPrice) / *offering.BasePrice * 100))
}
