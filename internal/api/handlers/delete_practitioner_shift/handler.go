package delete_practitioner_shift

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts"
)

const (
	msgInvalidPractitionerID = "некорректный ID мастера"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgOverrideNotFound      = "на эту дату смена не переопределена"
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

// Handle DELETE /api/v1/practitioners/{practitionerId}/shifts/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := handlers.PathInt64(r, "practitionerId")
	if err != nil {
		h.logger.Warn("DELETE /practitioners/{id}/shifts/{date} - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	date, err := handlers.ParseDate(handlers.PathString(r, "date"), h.location)
	if err != nil {
		h.logger.Warn("DELETE /practitioners/{id}/shifts/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /practitioners/{id}/shifts/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), practitionerID, date, userID); err != nil {
		switch {
		case errors.Is(err, shifts.ErrOverrideNotFound):
			h.logger.Warn("DELETE /practitioners/{id}/shifts/{date} - Override not found: practitioner_id=%d, date=%s",
				practitionerID, date.Format(domain.DateFormat))
			handlers.RespondNotFound(w, msgOverrideNotFound)

		default:
			h.logger.Error("DELETE /practitioners/{id}/shifts/{date} - Failed to delete override: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /practitioners/{id}/shifts/{date} - Override deleted: practitioner_id=%d, date=%s, user_id=%s",
		practitionerID, date.Format(domain.DateFormat), userID)
	w.WriteHeader(http.StatusNoContent)
}
