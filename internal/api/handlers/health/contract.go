package health

import "context"

// Pinger компонент, доступность которого проверяется
type Pinger interface {
	Ping(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
