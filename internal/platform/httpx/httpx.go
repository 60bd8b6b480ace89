package httpx

import (
	"errors"
)

// HTTPStatusCoder is implemented by hosted-service errors that carry the
// upstream HTTP status.
type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

func IsClientHTTPStatus(code int) bool {
	return code >= 400 && code <= 499
}

// StatusFromError extracts the upstream status from a hosted-service error,
// or 0 when the error carries none (network failure, decode failure).
func StatusFromError(err error) int {
	if err == nil {
		return 0
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode()
	}
	return 0
}
