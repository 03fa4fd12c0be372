package start_checkout

import "errors"

var (
	// ErrProfileNotFound возвращается, когда у пользователя нет профиля клиента
	// Создание сессии без профиля невозможно: вызывающая сторона
	// перенаправляет пользователя во внешний поток аутентификации
	ErrProfileNotFound = errors.New("start_checkout: customer profile not found")

	// ErrOfferingNotFound возвращается, когда услуга не найдена или неактивна
	ErrOfferingNotFound = errors.New("start_checkout: service offering not found")

	// ErrOfferingInvalid возвращается при нарушении инварианта цен услуги
	// (цена со скидкой больше базовой)
	ErrOfferingInvalid = errors.New("start_checkout: invalid service offering pricing")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("start_checkout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("start_checkout: internal error")
)
