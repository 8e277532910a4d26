package update_payment_status

import (
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	updatePaymentStatus "github.com/m04kA/SMC-HomeBookingService/internal/usecase/update_payment_status"
)

// PaymentStatusRequest HTTP request model уведомления платёжного провайдера
type PaymentStatusRequest struct {
	AppointmentID int64   `json:"appointmentId"`
	Status        string  `json:"status"` // "pending", "paid", "failed", "refunded"
	ExternalRef   *string `json:"externalRef,omitempty"`
}

// PaymentStatusResponse HTTP response model
type PaymentStatusResponse struct {
	AppointmentID int64   `json:"appointmentId"`
	PaymentStatus string  `json:"paymentStatus"`
	Status        string  `json:"status"`
	ExternalRef   *string `json:"externalRef,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PaymentStatusRequest) ToUseCaseRequest(actor string) (*updatePaymentStatus.Request, error) {
	status, err := domain.ParsePaymentStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return &updatePaymentStatus.Request{
		AppointmentID: r.AppointmentID,
		Status:        status,
		ExternalRef:   r.ExternalRef,
		Actor:         actor,
	}, nil
}

// FromDomainAppointment конвертирует запись в HTTP response
func FromDomainAppointment(a *domain.Appointment) *PaymentStatusResponse {
	return &PaymentStatusResponse{
		AppointmentID: a.ID,
		PaymentStatus: a.PaymentStatus.String(),
		Status:        a.Status.String(),
		ExternalRef:   a.PaymentRef,
	}
}
