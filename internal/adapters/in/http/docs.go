// Package http is the echo adapter for the bakery API described in api/openapi.yaml.
//
// Callers are identified by headers set by the upstream gateway:
// X-Customer-ID for customers, X-Staff-ID for staff (resolved against the
// staff directory) and X-Verifier-Token for the payment verifier. Core errors
// map to statuses in one place (statusOf); a lost claim race is a 409 telling
// the client to refresh its queue.
package http
