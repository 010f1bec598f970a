package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusBadRequest)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("server selection timeout"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: server selection timeout)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestMissingFields(t *testing.T) {
	err := MissingFields([]string{"date", "timeTo"})

	if err.Code != CodeMissingFields {
		t.Errorf("expected code %s, got %s", CodeMissingFields, err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Message != "Missing fields: date, timeTo" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestBookingConflict(t *testing.T) {
	err := BookingConflict("10:50 – 11:10 is already booked", map[string]any{
		"bufferFrom": "10:50",
		"bufferTo":   "11:10",
	})

	if err.Code != CodeBookingConflict {
		t.Errorf("expected code %s, got %s", CodeBookingConflict, err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Details["bufferFrom"] != "10:50" || err.Details["bufferTo"] != "11:10" {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestConflict(t *testing.T) {
	err := Conflict("slot is being booked")

	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, err.HTTPStatus)
	}
}

func TestInternal(t *testing.T) {
	originalErr := errors.New("database error")
	err := Internal("internal error occurred", originalErr)

	if err.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, err.Code)
	}
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, err.HTTPStatus)
	}
	if err.Err != originalErr {
		t.Errorf("expected wrapped error to be originalErr")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := InvalidInput("bad id")
	regularErr := errors.New("regular error")

	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}

	wrapped := fmt.Errorf("transaction failed: %w", appErr)
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError() should see through wrapping")
	}
	if AsAppError(wrapped) != appErr {
		t.Errorf("AsAppError() should unwrap to the original AppError")
	}

	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}

func TestTimeoutAndNotFound(t *testing.T) {
	if err := Timeout("Request timeout"); err.StatusCode() != http.StatusGatewayTimeout || err.Code != CodeTimeout {
		t.Errorf("Timeout() = %d %s, want 504 %s", err.StatusCode(), err.Code, CodeTimeout)
	}
	if err := NotFound("Route"); err.StatusCode() != http.StatusNotFound || err.Message != "Route not found" {
		t.Errorf("NotFound() = %d %q", err.StatusCode(), err.Message)
	}
}
