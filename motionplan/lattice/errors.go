package lattice

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// DataError reports an invalid planning request. It is returned before any edge is scored.
type DataError struct {
	Err error
}

func (e *DataError) Error() string {
	return "invalid planning request: " + e.Err.Error()
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// Errors returns the individual problems when several were found.
func (e *DataError) Errors() []error {
	return multierr.Errors(e.Err)
}

// PlanningError reports a failure that aborts a planning call after validation, such as a projection that did
// not converge or an expired deadline.
type PlanningError struct {
	Err error
}

func (e *PlanningError) Error() string {
	return "lattice planner failed: " + e.Err.Error()
}

func (e *PlanningError) Unwrap() error {
	return e.Err
}

// NewDataError wraps err as a DataError. A nil err returns nil.
func NewDataError(err error) error {
	if err == nil {
		return nil
	}
	return &DataError{Err: err}
}

// NewPlanningError wraps err with context as a PlanningError.
func NewPlanningError(err error, msg string) error {
	return &PlanningError{Err: errors.Wrap(err, msg)}
}
