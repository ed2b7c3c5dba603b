package ledger

import "fmt"

// ValidationError reports a rejected argument: non-positive constructor
// parameters or negative revenue/spend. Callers can recover with errors.As.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateError reports an attempt to add an entity whose id is already
// registered in the ledger.
type DuplicateError struct {
	Kind string // "product" or "campaign"
	ID   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s id %q", e.Kind, e.ID)
}
