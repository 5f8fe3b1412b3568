// Package staffrepo persists the staff directory.
package staffrepo

import (
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/staff"

	"github.com/google/uuid"
)

// StaffMemberDTO is the staff_members row. Role holds the role name as parsed by
// staff.ParseRole; Active is false for people who left but whose history stays.
type StaffMemberDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Role   string    `gorm:"type:varchar(16);not null"`
	Active bool      `gorm:"not null"`
}

func (StaffMemberDTO) TableName() string {
	return "staff_members"
}

func fromDomain(m *staff.Member) StaffMemberDTO {
	return StaffMemberDTO{
		ID:     m.ID().Bytes(),
		Name:   m.Name(),
		Role:   m.Role().String(),
		Active: m.IsActive(),
	}
}

// toDomain rejects rows whose role is not known to this version of the service.
func toDomain(dto StaffMemberDTO) (*staff.Member, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	role, err := staff.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return staff.RestoreMember(id, dto.Name, role, dto.Active)
}
