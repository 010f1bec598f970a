package middleware

import (
	"net/http"

	apperrors "resourcebook/pkg/errors"
	httputil "resourcebook/pkg/http"
)

func writeMiddlewareError(w http.ResponseWriter, status int, code, message string) {
	_ = httputil.WriteError(w, apperrors.New(code, message, status))
}
