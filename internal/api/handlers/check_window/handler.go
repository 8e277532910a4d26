package check_window

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	checkWindow "github.com/m04kA/SMC-HomeBookingService/internal/usecase/check_window"
)

const (
	msgInvalidPractitionerID = "некорректный ID мастера"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidWindow         = "некорректное окно прибытия, ожидается HH:MM"
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
	useCase  CheckWindowUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CheckWindowUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/availability/check
// Query params: date, windowStart, windowEnd (required), duration (default 60), clients (default 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := handlers.PathInt64(r, "practitionerId")
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/availability/check - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	query := r.URL.Query()
	date, err := handlers.ParseDate(query.Get("date"), h.location)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/availability/check - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := handlers.QueryInt(r, "duration", defaultDurationMinutes)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/availability/check - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	clients, err := handlers.QueryInt(r, "clients", defaultClientCount)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/availability/check - Invalid clients: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClients)
		return
	}

	useCaseReq, err := ToUseCaseRequest(practitionerID, date, query.Get("windowStart"), query.Get("windowEnd"), duration, clients)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/availability/check - Invalid window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkWindow.ErrPractitionerNotFound):
			h.logger.Warn("GET /practitioners/{id}/availability/check - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /practitioners/{id}/availability/check - Invalid request: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /practitioners/{id}/availability/check - Failed to check window: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/availability/check - Window checked: practitioner_id=%d, window=%s, available=%t, reason=%s",
		practitionerID, result.Window.Start, result.Available, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
