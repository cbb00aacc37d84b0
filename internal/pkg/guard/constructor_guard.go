// Package guard provides ConstructorGuard, a marker embedded in value objects and
// commands so that zero values can be told apart from constructed ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct went through its constructor.
//
// Example:
//
//	var ErrDefinitionIsNotConstructed = errors.New("Definition must be created via NewDefinition")
//
//	type Definition struct {
//	    key   Key
//	    guard guard.ConstructorGuard
//	}
//
//	func (d Definition) Validate() error {
//	    return d.guard.Validate(ErrDefinitionIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) if the
// guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}

	if !g.isConstructed {
		return validationError
	}

	return nil
}
