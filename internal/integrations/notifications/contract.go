package notifications

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FailureObserver учитывает недоставленные события (реализуется *metrics.Metrics)
type FailureObserver interface {
	ObserveNotificationFailure(eventType string)
}
