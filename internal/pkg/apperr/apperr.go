package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for ownership/auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)

// GenerationKind distinguishes the ways an AI call can fail.
type GenerationKind string

const (
	KindTransport GenerationKind = "transport"
	KindParse     GenerationKind = "parse"
	KindShape     GenerationKind = "shape"
)

// rawExcerptLimit bounds how much model output a GenerationError carries.
const rawExcerptLimit = 1000

// GenerationError is the typed failure for an AI capability call. Callers
// treat it as a normal outcome, not a crash: the request maps it to a 502
// and nothing partial is persisted.
type GenerationError struct {
	Capability string
	Kind       GenerationKind
	RawExcerpt string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s failure: %v", e.Capability, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s failure", e.Capability, e.Kind)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerationError builds a GenerationError, truncating raw model output
// to a bounded diagnostic excerpt.
func NewGenerationError(capability string, kind GenerationKind, raw string, err error) *GenerationError {
	if len(raw) > rawExcerptLimit {
		raw = raw[:rawExcerptLimit]
	}
	return &GenerationError{
		Capability: capability,
		Kind:       kind,
		RawExcerpt: raw,
		Err:        err,
	}
}

// AsGeneration unwraps err into a *GenerationError if one is in its chain.
func AsGeneration(err error) (*GenerationError, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
