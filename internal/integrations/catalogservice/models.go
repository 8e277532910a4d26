package catalogservice

import (
	"fmt"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	"github.com/m04kA/SMC-HomeBookingService/pkg/types"
)

// Practitioner модель практикующего из каталога
type Practitioner struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	IsActive       bool     `json:"is_active"`
	ShiftStart     string   `json:"shift_start"` // HH:MM
	ShiftEnd       string   `json:"shift_end"`   // HH:MM
	ServiceIDs     []int64  `json:"service_ids"`
	PressureLevels []string `json:"pressure_levels"`
}

// ServiceOffering модель услуги из каталога
type ServiceOffering struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	IsActive  bool              `json:"is_active"`
	Durations []DurationVariant `json:"durations"`
}

// DurationVariant вариант длительности услуги
type DurationVariant struct {
	Minutes int     `json:"minutes"`
	Price   float64 `json:"price"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (p *Practitioner) ToDomain() (*domain.Practitioner, error) {
	start, err := types.NewTimeStringFromString(p.ShiftStart)
	if err != nil {
		return nil, fmt.Errorf("%w: practitioner id=%d shift_start: %v", ErrInvalidResponse, p.ID, err)
	}
	end, err := types.NewTimeStringFromString(p.ShiftEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: practitioner id=%d shift_end: %v", ErrInvalidResponse, p.ID, err)
	}

	return &domain.Practitioner{
		ID:             p.ID,
		Name:           p.Name,
		IsActive:       p.IsActive,
		ShiftStart:     start,
		ShiftEnd:       end,
		ServiceIDs:     p.ServiceIDs,
		PressureLevels: p.PressureLevels,
	}, nil
}

// ToDomain конвертирует ответ каталога в доменную модель
func (s *ServiceOffering) ToDomain() *domain.ServiceOffering {
	variants := make([]domain.DurationVariant, 0, len(s.Durations))
	for _, d := range s.Durations {
		variants = append(variants, domain.DurationVariant{Minutes: d.Minutes, Price: d.Price})
	}
	return &domain.ServiceOffering{
		ID:       s.ID,
		Name:     s.Name,
		IsActive: s.IsActive,
		Variants: variants,
	}
}
