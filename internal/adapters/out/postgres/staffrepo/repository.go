package staffrepo

import (
	"context"
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStaffRepository implements ports.StaffRepository using GORM. The HTTP
// layer uses it as the directory that turns an X-Staff-ID header into an
// identity with a role.
//
// Example:
//
//	member, err := repo.Get(ctx, staffID)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown caller
//	}
type GormStaffRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormStaffRepository(db *gorm.DB, tracker aggregateTracker) *GormStaffRepository {
	return &GormStaffRepository{db: db, tracker: tracker}
}

// Add inserts a staff member. Reusing an id yields errs.ObjectAlreadyExistsError.
func (r *GormStaffRepository) Add(ctx context.Context, member *staff.Member) error {
	if err := member.Validate(); err != nil {
		return err
	}

	dto := fromDomain(member)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("staff member", member.ID())
		}
		return errs.NewStorageError("add staff member", err)
	}

	r.tracker.TrackAggregate(member.ID(), member)
	return nil
}

// Get loads a staff member, inactive ones included. Callers decide whether an
// inactive member may act.
func (r *GormStaffRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Member, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StaffMemberDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staff member", id.String())
		}
		return nil, errs.NewStorageError("get staff member", err)
	}

	return toDomain(dto)
}
