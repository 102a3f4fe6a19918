// Package recovery provides panic recovery for query execution paths.
// Ensures a defect in one query cannot crash the viewer service.
package recovery

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// ToError wraps a function call with panic recovery, converting a panic
// into a returned error.
//
// Example:
//
//	err := recovery.ToError(logger, "search", func() error {
//	    res, err = executor.Query(ctx, sql)
//	    return err
//	})
func ToError(logger *slog.Logger, operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("%s panicked: %v", operation, r)
		}
	}()

	return fn()
}

// ToValue wraps a function that returns a value and error. If the function
// panics, returns the zero value and an error.
func ToValue[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			var zero T
			result = zero
			err = fmt.Errorf("%s panicked: %v", operation, r)
		}
	}()

	return fn()
}
