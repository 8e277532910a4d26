package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	computeAvailability "github.com/m04kA/SMC-HomeBookingService/internal/usecase/compute_availability"
)

const (
	msgInvalidPractitionerID = "некорректный ID мастера"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration       = "некорректная длительность"
	msgInvalidClients        = "некорректное количество клиентов"
	msgPractitionerNotFound  = "мастер не найден"
	msgInvalidRequest        = "некорректные параметры запроса"
)

const (
	defaultDurationMinutes = 60
	defaultClientCount     = 1
)

type Handler struct {
	useCase  ComputeAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ComputeAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/availability
// Query params: date (required, YYYY-MM-DD), duration (default 60), clients (default 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := handlers.PathInt64(r, "practitionerId")
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/availability - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"), h.location)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := handlers.QueryInt(r, "duration", defaultDurationMinutes)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	clients, err := handlers.QueryInt(r, "clients", defaultClientCount)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/availability - Invalid clients: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClients)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &computeAvailability.Request{
		PractitionerID:  practitionerID,
		Date:            date,
		DurationMinutes: duration,
		ClientCount:     clients,
	})
	if err != nil {
		switch {
		case errors.Is(err, computeAvailability.ErrPractitionerNotFound):
			h.logger.Warn("GET /practitioners/{id}/availability - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /practitioners/{id}/availability - Invalid request: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /practitioners/{id}/availability - Failed to compute availability: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/availability - Availability computed: practitioner_id=%d, date=%s, windows=%d",
		practitionerID, date.Format(domain.DateFormat), len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
