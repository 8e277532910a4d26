package update_payment_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "неизвестный статус оплаты"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "запись не найдена"
	msgInvalidTransition  = "переход статуса оплаты невозможен"
	msgInvalidRequest     = "некорректные данные уведомления"
)

type Handler struct {
	useCase UpdatePaymentStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdatePaymentStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payments/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PaymentStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /payments/status - Invalid status: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			h.logger.Warn("POST /payments/status - Appointment not found: appointment_id=%d", req.AppointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidStateTransition):
			h.logger.Warn("POST /payments/status - Invalid payment transition: appointment_id=%d, status=%s, error=%v",
				req.AppointmentID, req.Status, err)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /payments/status - Invalid request: appointment_id=%d, error=%v", req.AppointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /payments/status - Failed to update payment: appointment_id=%d, error=%v", req.AppointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/status - Payment updated: appointment_id=%d, payment_status=%s, status=%s",
		result.ID, result.PaymentStatus, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromDomainAppointment(result))
}
