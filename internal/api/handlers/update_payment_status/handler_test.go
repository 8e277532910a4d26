package update_payment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HomeBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HomeBookingService/internal/domain"
	updatePaymentStatus "github.com/m04kA/SMC-HomeBookingService/internal/usecase/update_payment_status"
	"github.com/m04kA/SMC-HomeBookingService/pkg/logger"
)

type fakeUseCase struct {
	got *updatePaymentStatus.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updatePaymentStatus.Request) (*domain.Appointment, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{
		ID:            req.AppointmentID,
		Status:        domain.StatusConfirmed,
		PaymentStatus: req.Status,
		PaymentRef:    req.ExternalRef,
	}, nil
}

func serve(uc *fakeUseCase, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/status", strings.NewReader(payload))
	req = req.WithContext(middleware.WithUserID(req.Context(), "payments"))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Paid(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"appointmentId": 9, "status": "paid", "externalRef": "pay_1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, domain.PaymentPaid, uc.got.Status)
	assert.Equal(t, "payments", uc.got.Actor)
	assert.JSONEq(t, `{"appointmentId":9,"paymentStatus":"paid","status":"confirmed","externalRef":"pay_1"}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
		status  int
	}{
		{name: "unknown status", payload: `{"appointmentId": 9, "status": "settled"}`, status: http.StatusBadRequest},
		{name: "not found", payload: `{"appointmentId": 9, "status": "paid"}`, err: updatePaymentStatus.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "invalid transition", payload: `{"appointmentId": 9, "status": "paid"}`,
			err: &domain.PaymentTransitionError{From: domain.PaymentRefunded, To: domain.PaymentPaid}, status: http.StatusUnprocessableEntity},
		{name: "validation", payload: `{"appointmentId": 9, "status": "not_paid"}`, err: updatePaymentStatus.ErrInvalidInput, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.payload)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
