package update_practitioner_shift

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts"
	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts/models"
)

const (
	msgInvalidPractitionerID = "некорректный ID мастера"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidTime           = "некорректный формат времени, ожидается HH:MM"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgPractitionerNotFound  = "мастер не найден"
	msgInvalidShift          = "некорректная смена: начало должно быть раньше конца"
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

// Handle PUT /api/v1/practitioners/{practitionerId}/shifts/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := handlers.PathInt64(r, "practitionerId")
	if err != nil {
		h.logger.Warn("PUT /practitioners/{id}/shifts/{date} - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	date, err := handlers.ParseDate(handlers.PathString(r, "date"), h.location)
	if err != nil {
		h.logger.Warn("PUT /practitioners/{id}/shifts/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /practitioners/{id}/shifts/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /practitioners/{id}/shifts/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(practitionerID, date, userID)
	if err != nil {
		h.logger.Warn("PUT /practitioners/{id}/shifts/{date} - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	shift, err := h.service.UpsertOverride(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrPractitionerNotFound):
			h.logger.Warn("PUT /practitioners/{id}/shifts/{date} - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /practitioners/{id}/shifts/{date} - Invalid shift: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidShift)

		default:
			h.logger.Error("PUT /practitioners/{id}/shifts/{date} - Failed to save shift: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /practitioners/{id}/shifts/{date} - Shift saved: practitioner_id=%d, date=%s, day_off=%t, user_id=%s",
		practitionerID, date.Format(domain.DateFormat), shift.DayOff, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainShift(shift))
}
