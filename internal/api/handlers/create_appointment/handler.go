package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/appointments/models"
	reserveAppointment "github.com/m04kA/SMC-HomeBookingService/internal/usecase/reserve_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrWindow  = "некорректная дата или окно прибытия, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgPractitionerNotFound = "мастер не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgPractitionerInactive = "мастер не принимает записи"
	msgServiceUnavailable   = "услуга недоступна у выбранного мастера"
	msgDurationNotOffered   = "длительность не предлагается для услуги"
	msgPressureNotSupported = "мастер не работает с выбранным давлением"
	msgInvalidRequest       = "некорректные данные записи"
)

type Handler struct {
	useCase  ReserveAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ReserveAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location, userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if reason, ok := domain.ReasonOf(err); ok {
			h.logger.Warn("POST /appointments - Window unavailable: practitioner_id=%d, window=%s, reason=%s",
				req.PractitionerID, req.WindowStart, reason)
			handlers.RespondUnavailable(w, reason)
			return
		}

		switch {
		case errors.Is(err, reserveAppointment.ErrPractitionerNotFound):
			h.logger.Warn("POST /appointments - Practitioner not found: practitioner_id=%d", req.PractitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, reserveAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, reserveAppointment.ErrPractitionerInactive):
			h.logger.Warn("POST /appointments - Practitioner inactive: practitioner_id=%d", req.PractitionerID)
			handlers.RespondBadRequest(w, msgPractitionerInactive)

		case errors.Is(err, reserveAppointment.ErrServiceInactive),
			errors.Is(err, reserveAppointment.ErrServiceNotSupported):
			h.logger.Warn("POST /appointments - Service unavailable: practitioner_id=%d, service_id=%d", req.PractitionerID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceUnavailable)

		case errors.Is(err, reserveAppointment.ErrDurationNotOffered):
			h.logger.Warn("POST /appointments - Duration not offered: service_id=%d, duration=%d", req.ServiceID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgDurationNotOffered)

		case errors.Is(err, reserveAppointment.ErrPressureNotSupported):
			h.logger.Warn("POST /appointments - Pressure not supported: practitioner_id=%d, pressure=%s", req.PractitionerID, req.PressureLevel)
			handlers.RespondBadRequest(w, msgPressureNotSupported)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /appointments - Failed to reserve appointment: practitioner_id=%d, user_id=%s, error=%v",
				req.PractitionerID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment reserved: appointment_id=%d, practitioner_id=%d, user_id=%s",
		result.ID, result.PractitionerID, userID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(result))
}
