package svgx

import (
	"errors"
	"fmt"

	"github.com/flanksource/svgx/store"
)

var (
	// ErrParse marks documents the XML parser rejects, or documents with no
	// root element.
	ErrParse = errors.New("svgx: unparseable document")

	// ErrNotFound is returned when a variant does not exist and generation
	// was disabled or failed. It aliases the store's sentinel so callers can
	// test either.
	ErrNotFound = store.ErrNotFound

	// ErrGeneration marks a generator that failed or produced a non-document
	// result.
	ErrGeneration = errors.New("svgx: variant generation failed")

	// ErrStore marks a rejected variant store write.
	ErrStore = errors.New("svgx: variant store failure")
)

// TransformError ties a failure to the variant being produced.
type TransformError struct {
	Variant string
	Op      string
	Err     error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s (%s) failed: %v", e.Variant, e.Op, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
