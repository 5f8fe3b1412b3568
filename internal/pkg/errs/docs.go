// Package errs holds the typed errors shared by the domain, the use cases and
// the adapters.
//
// Every type pairs a sentinel (ErrConflict, ErrForbidden, ...) with a struct
// carrying the details, and unwraps to its sentinel so callers classify with
// errors.Is:
//
//	if errors.Is(err, errs.ErrConflict) {
//	    // the claim was lost to a faster caller
//	}
//
// Validation failures come in three flavours (required, invalid, out of range);
// IsValidation reports whether an error belongs to any of them. ForbiddenError
// and StorageError keep their cause reachable through errors.As.
package errs
