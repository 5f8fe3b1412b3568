// Package guard provides ConstructorGuard, a marker embedded in commands, queries and
// domain objects so that zero values built around their constructors can be detected.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was built by its constructor.
//
// Example:
//
//	type PlaceOrderCommand struct {
//	    customerID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c PlaceOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
