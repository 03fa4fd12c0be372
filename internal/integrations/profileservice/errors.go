package profileservice

import "errors"

var (
	// ErrProfileNotFound возвращается, когда у пользователя нет профиля клиента
	ErrProfileNotFound = errors.New("customer profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")
)
