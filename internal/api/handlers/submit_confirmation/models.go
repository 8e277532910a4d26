package submit_confirmation

import (
	submitConfirmation "github.com/m04kA/SMC-HomeBookingService/internal/usecase/submit_confirmation"
)

// ConfirmationRequest HTTP request model
type ConfirmationRequest struct {
	Address       string  `json:"address"`
	EntranceNotes *string `json:"entranceNotes,omitempty"`
	Floor         *string `json:"floor,omitempty"`
	ParkingNotes  *string `json:"parkingNotes,omitempty"`
	HasPets       bool    `json:"hasPets"`
	PetNotes      *string `json:"petNotes,omitempty"`
	TableNeeded   bool    `json:"tableNeeded"`
	OilPreference *string `json:"oilPreference,omitempty"`
	ContactPhone  string  `json:"contactPhone"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmationRequest) ToUseCaseRequest(appointmentID int64, actor string) *submitConfirmation.Request {
	return &submitConfirmation.Request{
		AppointmentID: appointmentID,
		Address:       r.Address,
		EntranceNotes: r.EntranceNotes,
		Floor:         r.Floor,
		ParkingNotes:  r.ParkingNotes,
		HasPets:       r.HasPets,
		PetNotes:      r.PetNotes,
		TableNeeded:   r.TableNeeded,
		OilPreference: r.OilPreference,
		ContactPhone:  r.ContactPhone,
		Actor:         actor,
	}
}
