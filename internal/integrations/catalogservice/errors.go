package catalogservice

import "errors"

var (
	// ErrOfferingNotFound возвращается, когда услуга не найдена в каталоге
	ErrOfferingNotFound = errors.New("service offering not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
