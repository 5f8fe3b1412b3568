package order

import (
	"fmt"
	"slices"

	"bakery/internal/core/domain/model/staff"
	"bakery/internal/pkg/errs"
)

// Ownership describes how an edge interacts with owner_staff_id.
type Ownership int

const (
	// ClaimsOrder edges are first-write-wins: the caller becomes the owner.
	ClaimsOrder Ownership = iota + 1
	// RequiresOwner edges may only be taken by the current owner.
	RequiresOwner
)

func (o Ownership) String() string {
	switch o {
	case ClaimsOrder:
		return "claims"
	case RequiresOwner:
		return "requires owner"
	}
	return "unknown"
}

// Edge is a directed pair of fulfillment states.
type Edge struct {
	From FulfillmentState
	To   FulfillmentState
}

func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.From, e.To)
}

// Rule is one row of the transition table.
type Rule struct {
	Edge
	Roles     []staff.Role
	Ownership Ownership
	// RequiresUnclaimedSource adds "owner_staff_id IS NULL" to a claim.
	// prepared->in_transit does not set it: the baker still owns a prepared order.
	RequiresUnclaimedSource bool
	// RecordsPreparer stores the claimant as prepared_by.
	RecordsPreparer bool
}

// Permits reports whether role may take this edge.
func (r Rule) Permits(role staff.Role) bool {
	return slices.Contains(r.Roles, role)
}

var transitionTable = []Rule{
	{
		Edge:                    Edge{From: Pending, To: Preparing},
		Roles:                   []staff.Role{staff.Baker},
		Ownership:               ClaimsOrder,
		RequiresUnclaimedSource: true,
		RecordsPreparer:         true,
	},
	{
		Edge:      Edge{From: Preparing, To: Prepared},
		Roles:     []staff.Role{staff.Baker},
		Ownership: RequiresOwner,
	},
	{
		Edge:      Edge{From: Prepared, To: InTransit},
		Roles:     []staff.Role{staff.Delivery},
		Ownership: ClaimsOrder,
	},
	{
		Edge:      Edge{From: InTransit, To: Delivered},
		Roles:     []staff.Role{staff.Delivery},
		Ownership: RequiresOwner,
	},
}

// cancelRoles may cancel any non-terminal order without owning it.
var cancelRoles = []staff.Role{staff.Manager, staff.Admin}

// LookupRule returns the table row for from->to, or InvalidTransitionError when the
// edge is not part of the workflow. Cancellation is not in the table.
func LookupRule(from, to FulfillmentState) (Rule, error) {
	for _, rule := range transitionTable {
		if rule.From == from && rule.To == to {
			return rule, nil
		}
	}
	return Rule{}, errs.NewInvalidTransitionError(from, to)
}

// Rules returns a copy of the transition table.
func Rules() []Rule {
	rules := make([]Rule, 0, len(transitionTable))
	for _, rule := range transitionTable {
		rule.Roles = slices.Clone(rule.Roles)
		rules = append(rules, rule)
	}
	return rules
}

// CanCancel reports whether role may run the privileged cancel operation.
func CanCancel(role staff.Role) bool {
	return slices.Contains(cancelRoles, role)
}
