package chat

import (
	"errors"
	"fmt"
)

// Failure kinds. Use errors.Is against these to classify a *Failure.
var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrCapabilityFailure = errors.New("capability failure")
	ErrPrecondition      = errors.New("precondition violated")
)

// Failure is the result of a gesture that could not be carried out. It is
// scoped to that gesture: the log and capture mode are left as they were.
type Failure struct {
	Kind error
	Op   string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v: %v", f.Op, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Op, f.Kind)
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Err}
}

func permissionDenied(op string) *Failure {
	return &Failure{Kind: ErrPermissionDenied, Op: op}
}

func capabilityFailure(op string, err error) *Failure {
	return &Failure{Kind: ErrCapabilityFailure, Op: op, Err: err}
}

func precondition(op, reason string) *Failure {
	return &Failure{Kind: ErrPrecondition, Op: op, Err: errors.New(reason)}
}
