package whoscored

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL  = errors.New("invalid match url")
	ErrForeignHost = errors.New("host is not a configured site host")
)

// FetchError reports a failure to retrieve a match page: a transport error,
// a timeout, or a non-2xx status after warm-up and mirror fallback.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Blocked reports whether the status looks like bot-detection rather than a
// missing page.
func (e *FetchError) Blocked() bool {
	return isBlockStatus(e.StatusCode)
}
