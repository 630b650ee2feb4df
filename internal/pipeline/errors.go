package pipeline

import (
	"fmt"

	"github.com/keagan/overcut/internal/overlays"
)

// StageError is implemented by every pipeline failure. All stage errors
// are terminal to their request; a batch driver branches on the concrete
// type and moves on to the next request.
type StageError interface {
	error
	Stage() string
}

// ProbeError reports a failed media inspection.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe failed for %s: %v", e.Path, e.Err)
}
func (e *ProbeError) Unwrap() error { return e.Err }
func (e *ProbeError) Stage() string { return "probe" }

// InvalidTimingError reports a request rejected during validation or
// window resolution. No files have been produced when it is returned.
type InvalidTimingError struct {
	Err error
}

func (e *InvalidTimingError) Error() string {
	return fmt.Sprintf("invalid request timing: %v", e.Err)
}
func (e *InvalidTimingError) Unwrap() error { return e.Err }
func (e *InvalidTimingError) Stage() string { return "validate" }

// SegmentExtractionError reports a failed lossless cut, naming the
// segment kind being extracted.
type SegmentExtractionError struct {
	Kind overlays.SegmentKind
	Err  error
}

func (e *SegmentExtractionError) Error() string {
	return fmt.Sprintf("extraction of %s segment failed: %v", e.Kind, e.Err)
}
func (e *SegmentExtractionError) Unwrap() error { return e.Err }
func (e *SegmentExtractionError) Stage() string { return "extract" }

// CompositionError reports a failed overlay encode.
type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composition failed: %v", e.Err)
}
func (e *CompositionError) Unwrap() error { return e.Err }
func (e *CompositionError) Stage() string { return "compose" }

// ConcatenationError reports a failed lossless reassembly.
type ConcatenationError struct {
	Err error
}

func (e *ConcatenationError) Error() string {
	return fmt.Sprintf("concatenation failed: %v", e.Err)
}
func (e *ConcatenationError) Unwrap() error { return e.Err }
func (e *ConcatenationError) Stage() string { return "concat" }

// TimeoutError reports an external invocation that exceeded its deadline.
type TimeoutError struct {
	At  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s stage timed out: %v", e.At, e.Err)
}
func (e *TimeoutError) Unwrap() error { return e.Err }
func (e *TimeoutError) Stage() string { return e.At }
