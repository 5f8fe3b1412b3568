// Package order implements the Order aggregate and its fulfillment workflow.
//
// The package includes:
//   - Order: the aggregate root holding the frozen line snapshots and total
//   - Line: one product, quantity and unit price snapshot, never mutated
//   - FulfillmentState and PaymentState: two independent dimensions of an order
//   - the transition table: the single source of truth for which role may move
//     an order along which edge and what ownership rule applies
//   - StateChange: a planned, authorized transition expressed as a compare-and-swap
//     condition that a datastore can execute atomically
//
// Fulfillment workflow:
//
//	pending ──> preparing ──> prepared ──> in_transit ──> delivered
//	   │            │            │             │
//	   └────────────┴────────────┴─────────────┴──> cancelled
//
// pending->preparing and prepared->in_transit are claiming edges: the first staff
// member whose conditional write lands becomes the owner. preparing->prepared and
// in_transit->delivered may only be performed by the current owner. Cancellation
// is a separate privileged operation for managers and admins.
package order
