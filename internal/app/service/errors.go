package service

import (
	"net/http"

	"github.com/milecraft/award-search-service/internal/pkg/exception"
)

// ErrSearchUnavailable is the single user-facing error for any invocation
// failure. The service cannot tell a bad airport code from a provider
// outage, so it points at the most common cause and asks for a retry.
var ErrSearchUnavailable = exception.ApplicationError{
	Message:    "award search is temporarily unavailable; please double-check the airport codes and try again",
	StatusCode: http.StatusBadGateway,
}
