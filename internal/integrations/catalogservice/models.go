package catalogservice

// ServiceOffering услуга из каталога
type ServiceOffering struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	BasePrice       *float64 `json:"base_price"`
	DiscountPrice   *float64 `json:"discount_price"`
	DurationMinutes int      `json:"duration_minutes"`
	ProviderID      int64    `json:"provider_id"`
	CategoryID      int64    `json:"category_id"`
	IsActive        bool     `json:"is_active"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
