package domain

// DurationVariant is one bookable duration of a service with its price
type DurationVariant struct {
	Minutes int
	Price   float64
}

// ServiceOffering is a bookable service, read-only reference data
type ServiceOffering struct {
	ID       int64
	Name     string
	IsActive bool
	Variants []DurationVariant
}

// FindVariant returns the variant with the given duration
func (s *ServiceOffering) FindVariant(minutes int) (DurationVariant, bool) {
	for _, v := range s.Variants {
		if v.Minutes == minutes {
			return v, true
		}
	}
	return DurationVariant{}, false
}
