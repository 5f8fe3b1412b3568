package staff

import (
	"errors"
	"strings"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var (
	ErrIdentityIsNotConstructed = errors.New("Identity must be created via NewIdentity constructor")
	ErrMemberIsNotConstructed   = errors.New("Member must be created via NewMember or RestoreMember")
	ErrMemberIsInactive         = errors.New("staff member is inactive")
)

// Identity is the capability token {id, role} handed to the core by the auth layer.
type Identity struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewIdentity validates and builds an Identity.
func NewIdentity(id kernel.UUID, role Role) (Identity, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Identity{}, err
	}
	return Identity{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}

func (i Identity) ID() kernel.UUID {
	return i.id
}

func (i Identity) Role() Role {
	return i.role
}

// Member is a persisted staff record.
type Member struct {
	id     kernel.UUID
	name   string
	role   Role
	active bool
	guard  guard.ConstructorGuard
}

// NewMember creates an active staff member.
func NewMember(id kernel.UUID, name string, role Role) (*Member, error) {
	return RestoreMember(id, name, role, true)
}

// RestoreMember rebuilds a member from storage.
func RestoreMember(id kernel.UUID, name string, role Role, active bool) (*Member, error) {
	m := &Member{active: active, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		id.Validate(),
		role.Validate(),
		m.setName(name),
	); err != nil {
		return nil, err
	}
	m.id = id
	m.role = role
	return m, nil
}

func (m *Member) Validate() error {
	if m == nil {
		return ErrMemberIsNotConstructed
	}
	return m.guard.Validate(ErrMemberIsNotConstructed)
}

func (m *Member) ID() kernel.UUID {
	return m.id
}

func (m *Member) Name() string {
	return m.name
}

func (m *Member) Role() Role {
	return m.role
}

func (m *Member) IsActive() bool {
	return m.active
}

// Deactivate keeps the record (orders reference it) but revokes its capability.
func (m *Member) Deactivate() {
	m.active = false
}

// Identity returns the capability token of an active member.
func (m *Member) Identity() (Identity, error) {
	if !m.active {
		return Identity{}, errs.NewForbiddenErrorWithCause(m.role.String(), "act on orders", ErrMemberIsInactive)
	}
	return NewIdentity(m.id, m.role)
}

func (m *Member) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}
