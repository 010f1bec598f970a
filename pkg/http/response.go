package http

import (
	"encoding/json"
	"net/http"

	apperrors "resourcebook/pkg/errors"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)
	// No recovery possible after WriteHeader; return so the caller can log.
	return json.NewEncoder(w).Encode(data)
}

func WriteText(w http.ResponseWriter, statusCode int, text string) error {
	w.Header().Set("Content-Type", ContentTypeText)
	w.WriteHeader(statusCode)
	_, err := w.Write([]byte(text))
	return err
}

// WriteError renders any error. Missing-field errors are plain text, every
// other AppError is JSON; unknown errors become a generic 500.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	if appErr.Code == apperrors.CodeMissingFields {
		return WriteText(w, appErr.StatusCode(), appErr.Message)
	}
	if appErr.Code == apperrors.CodeInternal {
		return WriteJSON(w, appErr.StatusCode(), apperrors.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
	}
	return WriteJSON(w, appErr.StatusCode(), appErr.Response())
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}
