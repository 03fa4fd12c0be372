package session

import (
	"github.com/USMarket/USM-CheckoutService/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
// Транзакции репозиторий не открывает сам: активная транзакция
// приходит через контекст от transaction manager
type DBExecutor = dbmetrics.DBExecutor
