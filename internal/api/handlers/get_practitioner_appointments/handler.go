package get_practitioner_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/appointments"
)

const (
	msgInvalidPractitionerID   = "некорректный ID мастера"
	msgInvalidDate             = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidIncludeCancelled = "некорректное значение includeCancelled"
	msgInvalidRequest          = "некорректные параметры запроса"
)

type Handler struct {
	service  AppointmentService
	location *time.Location
	logger   Logger
}

func NewHandler(service AppointmentService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/appointments
// Query params: date (required, YYYY-MM-DD), includeCancelled (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := handlers.PathInt64(r, "practitionerId")
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/appointments - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	query := r.URL.Query()
	date, err := handlers.ParseDate(query.Get("date"), h.location)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includeCancelled := false
	if raw := query.Get("includeCancelled"); raw != "" {
		includeCancelled, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /practitioners/{id}/appointments - Invalid includeCancelled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIncludeCancelled)
			return
		}
	}

	result, err := h.service.ListByPractitioner(r.Context(), practitionerID, date, includeCancelled)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /practitioners/{id}/appointments - Invalid input: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /practitioners/{id}/appointments - Failed to list appointments: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/appointments - Appointments retrieved: practitioner_id=%d, date=%s, total=%d",
		practitionerID, date.Format(domain.DateFormat), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
