package update_payment_status

import "github.com/m04kA/SMC-HomeBookingService/internal/domain"

// Request модель уведомления о смене статуса оплаты
type Request struct {
	AppointmentID int64
	Status        domain.PaymentStatus
	ExternalRef   *string // идентификатор платежа у провайдера
	Actor         string
}
