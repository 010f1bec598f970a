package validator

import (
	"errors"
	"testing"

	"resourcebook/pkg/logger"
	"resourcebook/pkg/model"
)

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		Date:        "2025-03-14",
		Resource:    "MainConfRoom",
		TimeFrom:    "11:00",
		TimeTo:      "12:00",
		RequestedBy: "alice@example.com",
	}
}

func TestMissingFields(t *testing.T) {
	v := NewBookingValidator(logger.Nop())

	tests := []struct {
		name   string
		mutate func(r *model.BookingRequest)
		want   []string
	}{
		{
			name:   "complete request",
			mutate: func(r *model.BookingRequest) {},
			want:   nil,
		},
		{
			name:   "requestedBy is optional",
			mutate: func(r *model.BookingRequest) { r.RequestedBy = "" },
			want:   nil,
		},
		{
			name:   "missing date",
			mutate: func(r *model.BookingRequest) { r.Date = "" },
			want:   []string{"date"},
		},
		{
			name:   "blank resource",
			mutate: func(r *model.BookingRequest) { r.Resource = "   " },
			want:   []string{"resource"},
		},
		{
			name: "missing both times",
			mutate: func(r *model.BookingRequest) {
				r.TimeFrom = ""
				r.TimeTo = ""
			},
			want: []string{"timeFrom", "timeTo"},
		},
		{
			name:   "everything missing",
			mutate: func(r *model.BookingRequest) { *r = model.BookingRequest{} },
			want:   []string{"date", "resource", "timeFrom", "timeTo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			got := v.MissingFields(req)
			if len(got) != len(tt.want) {
				t.Fatalf("MissingFields() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MissingFields()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	v := NewBookingValidator(logger.Nop())

	tests := []struct {
		name      string
		mutate    func(r *model.BookingRequest)
		wantError bool
		wantField string
	}{
		{
			name:   "valid request",
			mutate: func(r *model.BookingRequest) {},
		},
		{
			name:   "hour without leading zero",
			mutate: func(r *model.BookingRequest) { r.TimeFrom = "9:00" },
		},
		{
			name:      "bad date format",
			mutate:    func(r *model.BookingRequest) { r.Date = "14/03/2025" },
			wantError: true,
			wantField: "date",
		},
		{
			name:      "impossible calendar date",
			mutate:    func(r *model.BookingRequest) { r.Date = "2025-02-30" },
			wantError: true,
			wantField: "date",
		},
		{
			name:      "bad time format",
			mutate:    func(r *model.BookingRequest) { r.TimeFrom = "25:00" },
			wantError: true,
			wantField: "timeFrom",
		},
		{
			name:      "end equals start",
			mutate:    func(r *model.BookingRequest) { r.TimeTo = r.TimeFrom },
			wantError: true,
			wantField: "timeTo",
		},
		{
			name:      "end before start",
			mutate:    func(r *model.BookingRequest) { r.TimeTo = "10:00" },
			wantError: true,
			wantField: "timeTo",
		},
		{
			name: "resource too long",
			mutate: func(r *model.BookingRequest) {
				long := make([]byte, 201)
				for i := range long {
					long[i] = 'a'
				}
				r.Resource = string(long)
			},
			wantError: true,
			wantField: "resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if (err != nil) != tt.wantError {
				t.Fatalf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError {
				return
			}

			var validationErrs ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if _, ok := validationErrs.Fields()[tt.wantField]; !ok {
				t.Errorf("expected error on field %q, got %v", tt.wantField, validationErrs)
			}
		})
	}
}
