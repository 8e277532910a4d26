package submit_confirmation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgNotAccepting         = "детали визита уже нельзя изменить"
	msgInvalidDetails       = "некорректные детали визита: адрес и телефон обязательны"
)

type Handler struct {
	useCase SubmitConfirmationUseCase
	logger  Logger
}

func NewHandler(useCase SubmitConfirmationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}/confirmation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/confirmation - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /appointments/{id}/confirmation - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id}/confirmation - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, userID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id}/confirmation - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidStateTransition):
			h.logger.Warn("PUT /appointments/{id}/confirmation - Not accepting details: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondUnprocessable(w, msgNotAccepting)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /appointments/{id}/confirmation - Invalid details: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidDetails)

		default:
			h.logger.Error("PUT /appointments/{id}/confirmation - Failed to save details: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/confirmation - Details saved: appointment_id=%d, status=%s, user_id=%s",
		result.ID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result))
}
