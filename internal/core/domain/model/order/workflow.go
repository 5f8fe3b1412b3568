package order

import (
	"errors"
	"fmt"
	"slices"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/staff"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var (
	ErrStateChangeIsNotConstructed = errors.New("StateChange must be created via PlanClaim, PlanAdvance or PlanCancel")
	ErrNotOwner                    = errors.New("caller does not own the order")
	ErrNotClaimingEdge             = errors.New("edge does not claim the order")
	ErrNotOwnedEdge                = errors.New("edge does not require ownership")
)

// ChangeKind names the operation a StateChange was planned for.
type ChangeKind int

const (
	KindClaim ChangeKind = iota + 1
	KindAdvance
	KindCancel
)

func (k ChangeKind) String() string {
	switch k {
	case KindClaim:
		return "claim"
	case KindAdvance:
		return "advance"
	case KindCancel:
		return "cancel"
	}
	return "unknown"
}

// StateChange is an authorized transition expressed as a compare-and-swap:
// the order moves to To only if, at write time, its state is one of From and
// its ownership satisfies the condition. Repositories turn it into a single
// conditional UPDATE; Matches and Explain read it against a loaded snapshot.
type StateChange struct {
	kind             ChangeKind
	orderID          kernel.UUID
	actor            staff.Identity
	from             []FulfillmentState
	to               FulfillmentState
	requireUnclaimed bool
	requiredOwner    *kernel.UUID
	newOwner         *kernel.UUID
	setPreparedBy    bool
	guard            guard.ConstructorGuard
}

// PlanClaim authorizes a claiming transition for actor. The edge must be a claiming
// edge of the transition table and the actor's role must be permitted on it.
// Storage is not consulted.
func PlanClaim(orderID kernel.UUID, actor staff.Identity, from, to FulfillmentState) (StateChange, error) {
	rule, err := authorize(orderID, actor, from, to)
	if err != nil {
		return StateChange{}, err
	}
	if rule.Ownership != ClaimsOrder {
		return StateChange{}, fmt.Errorf("%w: %w", errs.NewInvalidTransitionError(from, to), ErrNotClaimingEdge)
	}

	owner := actor.ID()
	return StateChange{
		kind:             KindClaim,
		orderID:          orderID,
		actor:            actor,
		from:             []FulfillmentState{from},
		to:               to,
		requireUnclaimed: rule.RequiresUnclaimedSource,
		newOwner:         &owner,
		setPreparedBy:    rule.RecordsPreparer,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// PlanAdvance authorizes a non-claiming transition. It only lands if the actor
// is still the owner when the write happens.
func PlanAdvance(orderID kernel.UUID, actor staff.Identity, from, to FulfillmentState) (StateChange, error) {
	rule, err := authorize(orderID, actor, from, to)
	if err != nil {
		return StateChange{}, err
	}
	if rule.Ownership != RequiresOwner {
		return StateChange{}, fmt.Errorf("%w: %w", errs.NewInvalidTransitionError(from, to), ErrNotOwnedEdge)
	}

	owner := actor.ID()
	return StateChange{
		kind:          KindAdvance,
		orderID:       orderID,
		actor:         actor,
		from:          []FulfillmentState{from},
		to:            to,
		requiredOwner: &owner,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// PlanCancel authorizes cancellation from any non-terminal state. Ownership is
// neither checked nor changed.
func PlanCancel(orderID kernel.UUID, actor staff.Identity) (StateChange, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return StateChange{}, err
	}
	if !CanCancel(actor.Role()) {
		return StateChange{}, errs.NewForbiddenError(actor.Role().String(), "cancel orders")
	}

	return StateChange{
		kind:    KindCancel,
		orderID: orderID,
		actor:   actor,
		from:    NonTerminalStates(),
		to:      Cancelled,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func authorize(orderID kernel.UUID, actor staff.Identity, from, to FulfillmentState) (Rule, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate(), from.Validate(), to.Validate()); err != nil {
		return Rule{}, err
	}
	rule, err := LookupRule(from, to)
	if err != nil {
		return Rule{}, err
	}
	if !rule.Permits(actor.Role()) {
		return Rule{}, errs.NewForbiddenError(actor.Role().String(), "move orders "+rule.Edge.String())
	}
	return rule, nil
}

func (c StateChange) Validate() error {
	return c.guard.Validate(ErrStateChangeIsNotConstructed)
}

func (c StateChange) Kind() ChangeKind {
	return c.kind
}

func (c StateChange) OrderID() kernel.UUID {
	return c.orderID
}

func (c StateChange) Actor() staff.Identity {
	return c.actor
}

// From returns the set of states the write is conditioned on.
func (c StateChange) From() []FulfillmentState {
	return slices.Clone(c.from)
}

func (c StateChange) To() FulfillmentState {
	return c.to
}

// RequiresUnclaimed reports whether the write is conditioned on owner_staff_id IS NULL.
func (c StateChange) RequiresUnclaimed() bool {
	return c.requireUnclaimed
}

// RequiredOwner returns the owner the write is conditioned on, if any.
func (c StateChange) RequiredOwner() (kernel.UUID, bool) {
	if c.requiredOwner == nil {
		return kernel.UUID{}, false
	}
	return *c.requiredOwner, true
}

// NewOwner returns the owner written by the change. Advance and cancel leave the owner untouched.
func (c StateChange) NewOwner() (kernel.UUID, bool) {
	if c.newOwner == nil {
		return kernel.UUID{}, false
	}
	return *c.newOwner, true
}

// SetsPreparedBy reports whether the new owner is also recorded as prepared_by.
func (c StateChange) SetsPreparedBy() bool {
	return c.setPreparedBy
}

// Matches evaluates the compare part of the change against a current snapshot.
func (c StateChange) Matches(o *Order) bool {
	if o == nil || !slices.Contains(c.from, o.fulfillmentState) {
		return false
	}
	if c.requireUnclaimed && o.ownerID != nil {
		return false
	}
	if c.requiredOwner != nil && (o.ownerID == nil || !o.ownerID.IsEqual(*c.requiredOwner)) {
		return false
	}
	return true
}

// Explain turns a write that did not land into the error reported to the caller,
// given the order as it is now.
//
//   - claim: somebody else moved the order first, Conflict
//   - advance: state moved on, InvalidTransition(current, to); otherwise another owner, Forbidden
//   - cancel: the order is terminal, InvalidTransition(current, cancelled)
//
// A snapshot that does match means the row changed again in between; that is a Conflict too.
func (c StateChange) Explain(current *Order) error {
	if current == nil {
		return errs.NewObjectNotFoundError("order", c.orderID)
	}
	if c.Matches(current) {
		return errs.NewConflictError("order", c.orderID)
	}

	switch c.kind {
	case KindAdvance:
		if !slices.Contains(c.from, current.fulfillmentState) {
			return errs.NewInvalidTransitionError(current.fulfillmentState, c.to)
		}
		return errs.NewForbiddenErrorWithCause(
			c.actor.Role().String(), "move orders "+Edge{From: c.from[0], To: c.to}.String(), ErrNotOwner,
		)
	case KindCancel:
		return errs.NewInvalidTransitionError(current.fulfillmentState, c.to)
	default:
		return errs.NewConflictError("order", c.orderID)
	}
}
