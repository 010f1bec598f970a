package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	bookingserrors "resourcebook/internal/bookings/errors"
	"resourcebook/pkg/logger"
	"resourcebook/pkg/model"
	"resourcebook/pkg/timeofday"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Fields returns a field -> message map suitable for error details.
func (v ValidationErrors) Fields() map[string]any {
	fields := make(map[string]any, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("clock", validateClock); err != nil {
		log.Fatal("Failed to register 'clock' validator",
			"error", err,
		)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := timeofday.Parse(fl.Field().String())
	return err == nil
}

// MissingFields lists the required fields that are absent or blank, in
// request order. It runs before any other check.
func (v *BookingValidator) MissingFields(req *model.BookingRequest) []string {
	var missing []string
	if strings.TrimSpace(req.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(req.Resource) == "" {
		missing = append(missing, "resource")
	}
	if strings.TrimSpace(req.TimeFrom) == "" {
		missing = append(missing, "timeFrom")
	}
	if strings.TrimSpace(req.TimeTo) == "" {
		missing = append(missing, "timeTo")
	}
	return missing
}

func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	from, _ := timeofday.Parse(req.TimeFrom)
	to, _ := timeofday.Parse(req.TimeTo)
	if !from.Before(to) {
		return ValidationErrors{
			ValidationError{
				Field:   "timeTo",
				Message: bookingserrors.ErrInvalidTimeRange.Error(),
			},
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", err.Field())
		case "clock":
			message = fmt.Sprintf("%s must be a time of day in HH:MM format (00:00-23:59)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
