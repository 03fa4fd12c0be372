package domain

// BookingRequest плоская проекция черновика для отправки в BookingService
//
// Строится ровно один раз, в момент отправки, из завершённого черновика
// и свежего расчёта стоимости. После построения не изменяется - это
// версионируемый контракт с интерфейсом создания бронирований
type BookingRequest struct {
	UserID     int64 `json:"userId"`
	ServiceID  int64 `json:"serviceId"`
	ProviderID int64 `json:"providerId"`
	Quantity   int   `json:"quantity"`

	// Контакты клиента
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone"`
	AlternatePhone string `json:"alternatePhone,omitempty"`

	// Адрес оказания услуги
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Landmark     string `json:"landmark,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	// Расписание
	PreferredDate     string `json:"preferredDate"`
	PreferredTimeSlot string `json:"preferredTimeSlot"`

	// Требования
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
	Materials           []string `json:"materials,omitempty"`

	// Оплата
	PaymentMethod string `json:"paymentMethod"`

	// Стоимость
	BaseAmount  float64 `json:"baseAmount"`
	VisitCharge float64 `json:"visitCharge"`
	Taxes       float64 `json:"taxes"`
	TotalAmount float64 `json:"totalAmount"`
}

// BuildBookingRequest строит запрос на создание бронирования из сессии
// Стоимость пересчитывается в момент построения
func BuildBookingRequest(s *CheckoutSession) *BookingRequest {
	draft := s.Wizard.Draft
	pricing := s.Pricing()

	return &BookingRequest{
		UserID:     s.UserID,
		ServiceID:  s.ServiceID,
		ProviderID: s.ProviderID,
		Quantity:   draft.Quantity,

		CustomerName:   draft.CustomerInfo.Name,
		CustomerEmail:  draft.CustomerInfo.Email,
		CustomerPhone:  draft.CustomerInfo.Phone,
		AlternatePhone: draft.CustomerInfo.AlternatePhone,

		Street:       draft.Address.Street,
		City:         draft.Address.City,
		State:        draft.Address.State,
		ZipCode:      draft.Address.ZipCode,
		Landmark:     draft.Address.Landmark,
		Instructions: draft.Address.Instructions,

		PreferredDate:     draft.Scheduling.PreferredDate,
		PreferredTimeSlot: draft.Scheduling.PreferredTimeSlot.String(),

		SpecialInstructions: draft.Requirements.SpecialInstructions,
		Materials:           draft.Requirements.Materials,

		PaymentMethod: string(draft.Payment.Method),

		BaseAmount:  pricing.Subtotal,
		VisitCharge: pricing.VisitCharge,
		Taxes:       pricing.Taxes,
		TotalAmount: pricing.Total,
	}
}
