package start_checkout

import (
	checkoutModels "github.com/USMarket/USM-CheckoutService/internal/service/checkout/models"
)

// Request модель запроса на создание сессии оформления
type Request struct {
	UserID    int64 // ID пользователя
	ServiceID int64 // ID услуги из каталога
}

// Response модель ответа с созданной или возобновлённой сессией
type Response struct {
	Session *checkoutModels.SessionResponse // Состояние сессии
	Resumed bool                            // true, если возвращена уже начатая сессия
}
