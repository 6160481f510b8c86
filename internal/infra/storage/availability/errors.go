package availability

import "errors"

var (
	// ErrStorageUnavailable основное хранилище не ответило или вернуло ошибку драйвера
	ErrStorageUnavailable = errors.New("availability: storage unavailable")
)
