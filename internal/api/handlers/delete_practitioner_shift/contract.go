package delete_practitioner_shift

import (
	"context"
	"time"
)

type ShiftService interface {
	DeleteOverride(ctx context.Context, practitionerID int64, date time.Time, actor string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
