package modelprovider

import (
	"net/http"

	"github.com/milecraft/award-search-service/internal/pkg/exception"
)

var ErrProviderRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "model provider rate limit exceeded",
}
