package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apierrors "github.com/MarcAntoine-Arnaud/catalog-api/pkg/errors"
)

// RespondWithError sends a plain error response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error": message,
		"code":  http.StatusText(statusCode),
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// RespondWithAPIError maps a service error to its HTTP status and a structured
// body. Errors that are not APIErrors are treated as server faults: logged,
// never leaked to the client.
func RespondWithAPIError(w http.ResponseWriter, err error) {
	apiErr := apierrors.AsAPIError(err)
	if apiErr == nil {
		slog.Error("Unexpected error", "error", err)
		apiErr = apierrors.InternalError("Internal server error")
	} else if apiErr.InternalErr != nil {
		slog.Error("Request failed", "error", apiErr.InternalErr, "code", apiErr.Code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus)

	if err := json.NewEncoder(w).Encode(map[string]interface{}{"error": apiErr}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode success response", "error", err)
	}
}

// ParseJSONRequest decodes the request body into dst
func ParseJSONRequest(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// PanicRecoveryMiddleware recovers from handler panics and responds with a
// generic server fault
func PanicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("Handler panicked", "error", err, "path", r.URL.Path)
				RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
