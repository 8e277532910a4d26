package update_practitioner_shift

import (
	"time"

	"github.com/m04kA/SMC-HomeBookingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// UpdateShiftRequest HTTP request model
type UpdateShiftRequest struct {
	Start  *string `json:"start,omitempty"` // "10:00"
	End    *string `json:"end,omitempty"`   // "18:00"
	DayOff bool    `json:"dayOff"`
	Note   *string `json:"note,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateShiftRequest) ToServiceRequest(practitionerID int64, date time.Time, actor string) (*models.UpsertOverrideRequest, error) {
	req := &models.UpsertOverrideRequest{
		PractitionerID: practitionerID,
		Date:           date,
		DayOff:         r.DayOff,
		Note:           r.Note,
		Actor:          actor,
	}
	if r.Start != nil {
		start, err := types.NewTimeStringFromString(*r.Start)
		if err != nil {
			return nil, err
		}
		req.Start = &start
	}
	if r.End != nil {
		end, err := types.NewTimeStringFromString(*r.End)
		if err != nil {
			return nil, err
		}
		req.End = &end
	}
	return req, nil
}
