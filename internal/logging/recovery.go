package logging

import (
	"fmt"
	"runtime/debug"
)

// RecoveryHandler handles panics with logging. Entity extractors run
// behind one so a single misbehaving extractor cannot abort a parse.
type RecoveryHandler struct {
	Component string
	OnPanic   func(err any, stack string)
}

// NewRecoveryHandler creates a recovery handler for a component
func NewRecoveryHandler(component string) *RecoveryHandler {
	return &RecoveryHandler{Component: component}
}

// Wrap executes fn with panic recovery
func (r *RecoveryHandler) Wrap(fn func()) {
	defer r.recover()
	fn()
}

// WrapError executes fn with panic recovery, returning error on panic
func (r *RecoveryHandler) WrapError(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			stack := string(debug.Stack())
			err = r.handlePanic(rec, stack)
		}
	}()
	return fn()
}

// recover handles a panic and logs it
func (r *RecoveryHandler) recover() {
	if rec := recover(); rec != nil {
		stack := string(debug.Stack())
		r.handlePanic(rec, stack)
	}
}

func (r *RecoveryHandler) handlePanic(rec any, stack string) error {
	err := fmt.Errorf("panic in %s: %v", r.Component, rec)

	New(r.Component).Error("panic_recovered", map[string]any{
		"stack": stack,
	}, err)

	if r.OnPanic != nil {
		r.OnPanic(rec, stack)
	}

	return err
}
