package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
)

// PathInt64 читает числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing path param %q", name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("path param %q: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("path param %q must be positive", name)
	}
	return v, nil
}

// QueryInt читает необязательный целочисленный query параметр
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query param %q: %w", name, err)
	}
	return v, nil
}

// ParseDate разбирает дату YYYY-MM-DD как полночь в часовом поясе расписания
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return time.ParseInLocation(domain.DateFormat, value, loc)
}

// PathString читает строковый параметр пути
func PathString(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
