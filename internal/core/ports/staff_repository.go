package ports

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/staff"
)

// StaffRepository stores the staff directory used to resolve caller identities.
type StaffRepository interface {
	// Add stores a new member. Reusing an id is errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, member *staff.Member) error

	// Get loads a member, active or not. Unknown ids yield errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*staff.Member, error)
}
