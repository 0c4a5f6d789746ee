package extract

import (
	"errors"
	"fmt"
)

var (
	ErrNoPayloadRegion  = errors.New("no script region contains the match id anchor")
	ErrAmbiguousRegion  = errors.New("several script regions contain the match id anchor and none carries match centre data")
	ErrNoPayloadObject  = errors.New("no payload object found in script region")
	ErrPayloadUnusable  = errors.New("payload could not be reduced to structured data")
	ErrMissingAnchorKey = errors.New("parsed payload has no match id")
)

// ExtractionError reports that the embedded match payload could not be
// located or parsed by either the strict or the fallback path.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract match payload: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
