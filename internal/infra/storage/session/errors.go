package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия оформления не найдена
	ErrSessionNotFound = errors.New("session.repository: checkout session not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")

	// ErrEncodeState возвращается при ошибке сериализации состояния черновика
	ErrEncodeState = errors.New("session.repository: failed to encode draft state")

	// ErrDecodeState возвращается при ошибке десериализации состояния черновика
	ErrDecodeState = errors.New("session.repository: failed to decode draft state")
)
