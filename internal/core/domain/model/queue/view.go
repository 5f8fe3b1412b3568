package queue

import (
	"fmt"
	"slices"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/pkg/errs"
)

// View is a named queue a staff member can open.
type View string

const (
	ViewPending   View = "pending"
	ViewActive    View = "active"
	ViewCompleted View = "completed"
)

func ParseView(s string) (View, error) {
	v := View(s)
	if !slices.Contains([]View{ViewPending, ViewActive, ViewCompleted}, v) {
		return "", errs.NewValueIsInvalidErrorWithCause("view", fmt.Errorf("%q is not a work queue view", s))
	}
	return v, nil
}

func (v View) String() string {
	return string(v)
}

// Relation ties a queue to the caller.
type Relation int

const (
	// Anyone shows orders regardless of who holds them.
	Anyone Relation = iota
	// OwnedByCaller requires owner_staff_id = caller.
	OwnedByCaller
	// PreparedByCaller requires prepared_by = caller.
	PreparedByCaller
)

// Criteria selects orders for one queue.
type Criteria struct {
	States      []order.FulfillmentState // empty means any state
	PaidOnly    bool
	Relation    Relation
	StaffMember kernel.UUID
}

type viewKey struct {
	role staff.Role
	view View
}

type template struct {
	states   []order.FulfillmentState
	paidOnly bool
	relation Relation
}

var viewTable = map[viewKey]template{
	{staff.Baker, ViewPending}:   {states: []order.FulfillmentState{order.Pending}, paidOnly: true},
	{staff.Baker, ViewActive}:    {states: []order.FulfillmentState{order.Preparing}, relation: OwnedByCaller},
	{staff.Baker, ViewCompleted}: {states: []order.FulfillmentState{order.Prepared, order.InTransit, order.Delivered}, relation: PreparedByCaller},

	{staff.Delivery, ViewPending}:   {states: []order.FulfillmentState{order.Prepared}, paidOnly: true},
	{staff.Delivery, ViewActive}:    {states: []order.FulfillmentState{order.InTransit}, relation: OwnedByCaller},
	{staff.Delivery, ViewCompleted}: {states: []order.FulfillmentState{order.Delivered}, relation: OwnedByCaller},
}

// supervisors see every paid order in any view.
var supervisorTemplate = template{paidOnly: true}

// CriteriaFor resolves the queue definition for caller.
func CriteriaFor(caller staff.Identity, view View) (Criteria, error) {
	if err := caller.Validate(); err != nil {
		return Criteria{}, err
	}
	if _, err := ParseView(string(view)); err != nil {
		return Criteria{}, err
	}

	tmpl, ok := viewTable[viewKey{role: caller.Role(), view: view}]
	if !ok {
		if !caller.Role().IsSupervisor() {
			return Criteria{}, errs.NewForbiddenError(caller.Role().String(), "open the "+view.String()+" queue")
		}
		tmpl = supervisorTemplate
	}

	return Criteria{
		States:      slices.Clone(tmpl.states),
		PaidOnly:    tmpl.paidOnly,
		Relation:    tmpl.relation,
		StaffMember: caller.ID(),
	}, nil
}
