package lolesports

import (
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
)

// UnexpectedStatusError is returned for any status outside an endpoint's
// accepted set. It is fatal to the current job attempt.
type UnexpectedStatusError struct {
	Expected []int
	Actual   int
	URL      string
	Body     string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected feed status: expected=%v actual=%d url=%s", e.Expected, e.Actual, e.URL)
}

// Transient reports statuses that indicate an upstream outage rather than a
// bad request.
func (e *UnexpectedStatusError) Transient() bool {
	return e.Actual >= http.StatusInternalServerError || e.Actual == http.StatusTooManyRequests
}

// IsUnexpectedStatus unwraps err into an UnexpectedStatusError.
func IsUnexpectedStatus(err error) (*UnexpectedStatusError, bool) {
	var statusErr *UnexpectedStatusError
	if crerr.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

func isCircuitFailure(err error) bool {
	if crerr.Is(err, errFeedTransient) {
		return true
	}
	if statusErr, ok := IsUnexpectedStatus(err); ok {
		return statusErr.Transient()
	}
	return false
}
