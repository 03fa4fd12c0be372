package checkout

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия оформления не найдена
	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrSessionCompleted возвращается при попытке изменить завершённую сессию
	ErrSessionCompleted = errors.New("checkout session already completed")

	// ErrInvalidInput возвращается при некорректных входных данных
	// (неизвестная секция или поле, недопустимое значение)
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
