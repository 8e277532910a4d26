package record_quality

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
	msgNotCompleted         = "отзыв можно оставить только после завершения визита"
	msgInvalidQuality       = "некорректный отзыв: оценка от 1 до 5"
)

type Handler struct {
	useCase RecordQualityUseCase
	logger  Logger
}

func NewHandler(useCase RecordQualityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}/quality
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/quality - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /appointments/{id}/quality - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req QualityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id}/quality - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, userID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id}/quality - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidStateTransition):
			h.logger.Warn("PUT /appointments/{id}/quality - Visit not completed: appointment_id=%d", appointmentID)
			handlers.RespondUnprocessable(w, msgNotCompleted)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /appointments/{id}/quality - Invalid quality: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidQuality)

		default:
			h.logger.Error("PUT /appointments/{id}/quality - Failed to record quality: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/quality - Quality recorded: appointment_id=%d, rating=%d, user_id=%s",
		result.ID, req.Rating, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result))
}
