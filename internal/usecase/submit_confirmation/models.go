package submit_confirmation

// Request модель запроса с деталями визита от клиента
type Request struct {
	AppointmentID int64
	Address       string
	EntranceNotes *string
	Floor         *string
	ParkingNotes  *string
	HasPets       bool
	PetNotes      *string
	TableNeeded   bool
	OilPreference *string
	ContactPhone  string
	Actor         string
}
