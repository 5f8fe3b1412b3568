package staff

import (
	"fmt"
	"strings"

	"bakery/internal/pkg/errs"
)

// Role is the job function of a staff member.
type Role int

const (
	// UnknownRole catches uninitialized values.
	UnknownRole Role = iota
	Baker
	Delivery
	Manager
	Accountant
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Baker:       "baker",
		Delivery:    "delivery",
		Manager:     "manager",
		Accountant:  "accountant",
		Admin:       "admin",
	}
}

// ParseRole converts the persisted/wire name of a role back into a Role.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for role, str := range getRoleStrings() {
		if role != UnknownRole && str == name {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a known role", s))
}

// Validate rejects UnknownRole and out of range values.
func (r Role) Validate() error {
	if r <= UnknownRole || r > Admin {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// IsSupervisor reports whether the role has read access to every paid order.
func (r Role) IsSupervisor() bool {
	return r == Manager || r == Accountant || r == Admin
}
