package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/precishq/precis/pkg/llm"
)

// MapUpstreamError converts a non-2xx backend response into an upstream
// error. The message is taken from the error envelope when the body carries
// one, falling back to the HTTP status line.
func MapUpstreamError(statusCode int, body []byte) *llm.Error {
	code, message := ExtractErrorDetails(body)
	if message == "" {
		message = fmt.Sprintf("HTTP %d %s", statusCode, http.StatusText(statusCode))
	}
	return llm.NewUpstreamError(code, message)
}

// ExtractErrorDetails tries to parse an error body as a ChatErrorResponse.
// It understands both the nested {"error":{"code","message"}} envelope and
// a bare top-level {"message"}. Unparseable bodies yield empty strings.
func ExtractErrorDetails(body []byte) (code, message string) {
	if len(body) == 0 {
		return "", ""
	}

	var envelope ChatErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", ""
	}

	if envelope.Error.Message != "" {
		return errorCodeString(envelope.Error.Code), envelope.Error.Message
	}
	return "", envelope.Message
}

// errorCodeString normalizes the code field, which backends report as a
// string, a number, or not at all.
func errorCodeString(code any) string {
	switch v := code.(type) {
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	default:
		return ""
	}
}

// mapSendError classifies a failed round trip. A context that fired during
// the call means the client side gave up first, which callers observe as a
// timeout regardless of what the transport was doing at that moment.
func mapSendError(ctx context.Context, err error) *llm.Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded:
		return llm.NewTimeoutError("request deadline exceeded")
	case errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled:
		return llm.NewTimeoutError("request cancelled")
	default:
		return llm.NewTransportError("backend connection error: " + err.Error())
	}
}
