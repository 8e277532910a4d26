package domain

import (
	"database/sql/driver"
	"fmt"
)

// PaymentStatus is the payment sub-state of an appointment, independent of its lifecycle status
type PaymentStatus uint8

const (
	PaymentNotPaid PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentRefunded

	paymentStatusCount
)

var paymentStatusNames = [paymentStatusCount]string{
	PaymentNotPaid:  "not_paid",
	PaymentPending:  "pending",
	PaymentPaid:     "paid",
	PaymentFailed:   "failed",
	PaymentRefunded: "refunded",
}

var paymentTransitions = [paymentStatusCount][]PaymentStatus{
	PaymentNotPaid:  {PaymentPending, PaymentPaid, PaymentFailed},
	PaymentPending:  {PaymentPaid, PaymentFailed},
	PaymentPaid:     {PaymentRefunded},
	PaymentFailed:   {PaymentPending, PaymentPaid},
	PaymentRefunded: nil,
}

// AllPaymentStatuses returns every payment status
func AllPaymentStatuses() []PaymentStatus {
	out := make([]PaymentStatus, 0, paymentStatusCount)
	for s := PaymentStatus(0); s < paymentStatusCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParsePaymentStatus parses the wire/database name of a payment status
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for i, name := range paymentStatusNames {
		if name == s {
			return PaymentStatus(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown payment status %q", ErrValidation, s)
}

func (s PaymentStatus) String() string {
	if s.IsValid() {
		return paymentStatusNames[s]
	}
	return fmt.Sprintf("payment(%d)", uint8(s))
}

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	return s < paymentStatusCount
}

// CanTransitionTo reports whether s → target is allowed
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	if !s.IsValid() {
		return false
	}
	for _, allowed := range paymentTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler
func (s PaymentStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("domain: invalid payment status %d", uint8(s))
	}
	return []byte(paymentStatusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *PaymentStatus) UnmarshalText(text []byte) error {
	parsed, err := ParsePaymentStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer
func (s PaymentStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("domain: invalid payment status %d", uint8(s))
	}
	return paymentStatusNames[s], nil
}

// Scan implements sql.Scanner
func (s *PaymentStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("domain: cannot scan %T into PaymentStatus", src)
	}
}
