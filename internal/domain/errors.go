package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates missing or invalid required input. Nothing
	// was written.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an operation against a nonexistent id.
	ErrNotFound = errors.New("not found")

	// ErrIDSpaceExhausted indicates the identifier allocator gave up
	// after its retry bound. Practically unreachable until the 10^8
	// numeric space is nearly full.
	ErrIDSpaceExhausted = errors.New("identifier space exhausted")
)

// ConstraintViolation reports a write rejected by a storage-level
// integrity rule (uniqueness, foreign key, restrict delete, enum check).
// Rule names the violated rule; the underlying driver error is wrapped.
type ConstraintViolation struct {
	Rule string
	Err  error
}

func (e *ConstraintViolation) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("constraint violated (%s): %v", e.Rule, e.Err)
	}
	return fmt.Sprintf("constraint violated (%s)", e.Rule)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// IsConstraintViolation reports whether any error in err's chain is a
// ConstraintViolation.
func IsConstraintViolation(err error) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv)
}
