package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/precishq/precis/pkg/api"
	"github.com/precishq/precis/pkg/llm"
	"github.com/precishq/precis/pkg/storage"
)

// HTTPStatusFromError maps an APIError type to the corresponding HTTP status
// code. Transport-level errors (body too large, unsupported content type,
// method not allowed) are handled separately by the HTTP adapter.
func HTTPStatusFromError(err *api.APIError) int {
	switch err.Type {
	case api.ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case api.ErrorTypeNotFound:
		return http.StatusNotFound
	case api.ErrorTypeConflict:
		return http.StatusConflict
	case api.ErrorTypeTooManyRequests:
		return http.StatusTooManyRequests
	case api.ErrorTypeUpstreamError:
		return http.StatusBadGateway
	case api.ErrorTypeUpstreamTimeout:
		return http.StatusGatewayTimeout
	case api.ErrorTypeServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// APIErrorFromError converts any handler error into an APIError. APIErrors
// pass through unchanged, storage sentinels become not_found/conflict,
// provider errors are classified by kind, and anything unrecognized becomes
// a server error.
func APIErrorFromError(err error) *api.APIError {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, storage.ErrNotFound) {
		return api.NewNotFoundError(err.Error())
	}
	if errors.Is(err, storage.ErrConflict) {
		return api.NewConflictError(err.Error())
	}
	var provErr *llm.Error
	if errors.As(err, &provErr) {
		return apiErrorFromProvider(provErr)
	}
	return api.NewServerError(err.Error())
}

// apiErrorFromProvider maps the provider error taxonomy onto HTTP-facing
// error types: validation failures are the client's fault, timeouts become
// upstream_timeout, network and backend failures become upstream_error, and
// configuration faults stay internal.
func apiErrorFromProvider(err *llm.Error) *api.APIError {
	switch err.Kind {
	case llm.ErrorKindValidation:
		return api.NewInvalidRequestError("", err.Message)
	case llm.ErrorKindTimeout:
		return api.NewUpstreamTimeoutError(err.Message)
	case llm.ErrorKindUpstream:
		return api.NewUpstreamError(err.Code, err.Message)
	case llm.ErrorKindTransport, llm.ErrorKindEmptyResponse:
		return api.NewUpstreamError(string(err.Kind), err.Message)
	default:
		return api.NewServerError(err.Message)
	}
}

// WriteErrorResponse writes a JSON error response using the ErrorResponse
// wrapper format from pkg/api. It sets the Content-Type header and writes
// the HTTP status code.
func WriteErrorResponse(w http.ResponseWriter, apiErr *api.APIError, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: apiErr})
}

// WriteAPIError writes an APIError response, deriving the HTTP status code
// from the error type.
func WriteAPIError(w http.ResponseWriter, apiErr *api.APIError) {
	WriteErrorResponse(w, apiErr, HTTPStatusFromError(apiErr))
}

// WriteError classifies err with APIErrorFromError and writes the result
// with the derived status code.
func WriteError(w http.ResponseWriter, err error) {
	WriteAPIError(w, APIErrorFromError(err))
}
