// Package errors provides the classified error type used across linkfix.
//
// Errors carry a category (config, validation, filesystem, ...), a severity,
// and a small map of context values. The CLI adapter turns them into exit
// codes and user-facing messages.
//
// Example usage:
//
//	err := errors.WrapError(statErr, errors.CategoryValidation, "root directory not found").
//		Fatal().
//		WithContext("root", root).
//		Build()
package errors
