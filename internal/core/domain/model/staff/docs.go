// Package staff models the bakery's fulfillment staff as seen by the order core.
//
// Staff records are maintained by an external administration surface. The core only
// needs a capability token: an Identity carrying the staff member's id and Role.
// The role decides which fulfillment transitions the member may perform and which
// work queues they see.
package staff
