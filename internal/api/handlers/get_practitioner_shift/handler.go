package get_practitioner_shift

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts/models"
)

const (
	msgInvalidPractitionerID = "некорректный ID мастера"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPractitionerNotFound  = "мастер не найден"
)

type Handler struct {
	service  ShiftService
	location *time.Location
	logger   Logger
}

func NewHandler(service ShiftService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/shifts/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := handlers.PathInt64(r, "practitionerId")
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/shifts/{date} - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	date, err := handlers.ParseDate(handlers.PathString(r, "date"), h.location)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/shifts/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	shift, err := h.service.GetShift(r.Context(), practitionerID, date)
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrPractitionerNotFound):
			h.logger.Warn("GET /practitioners/{id}/shifts/{date} - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		default:
			h.logger.Error("GET /practitioners/{id}/shifts/{date} - Failed to get shift: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/shifts/{date} - Shift retrieved: practitioner_id=%d, date=%s, source=%s",
		practitionerID, date.Format(domain.DateFormat), shift.Source)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainShift(shift))
}
