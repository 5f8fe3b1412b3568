package kernel

import (
	"fmt"

	"bakery/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one of the constructors.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object used for orders, lines, products, customers,
// delivery addresses and staff members. The zero value is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the standard, braced, urn and hyphen-less forms.
// The nil UUID is rejected so that a missing reference never passes as an identifier.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUIDFromGoogle(id)
}

// UUIDFromBytes builds a UUID from its 16 byte representation.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUIDFromGoogle(id)
}

// UUIDFromGoogle wraps an already parsed identifier, e.g. one bound from an HTTP path.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	newID := UUID{id: id}
	if err := newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value, used by persistence DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
