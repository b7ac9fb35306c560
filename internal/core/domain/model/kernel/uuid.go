package kernel

import (
	"fmt"

	"printdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID, or
// when parsing yields the nil UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies records the core itself creates: push subscriptions and
// live viewer connections. Order ids are opaque strings owned by intake and do
// not use this type.
//
// UUID wraps github.com/google/uuid so the domain never handles the nil
// identifier. The zero value is invalid; build one with NewUUID,
// UUIDFromString or UUIDFromBytes. Values are immutable and safe to share
// between goroutines.
//
// Example:
//
//	id := kernel.NewUUID()
//	sub := subscription.RestoreSubscription(id, "evan", endpoint, keys, createdAt, updatedAt)
//
//	parsed, err := kernel.UUIDFromString(sub.ID().String())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(parsed.IsEqual(id)) // true
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID. It is how new subscriptions
// and viewer connections get their identity.
//
// Example:
//
//	viewerID := kernel.NewUUID()
//	logger.Info("Viewer connected", "viewer_id", viewerID.String())
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID from text. Besides the canonical form it
// accepts the braced and urn:uuid: forms google/uuid understands:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// Malformed input returns a wrapped parse error. The nil UUID parses but is
// rejected with ErrUUIDIsNotConstructed.
//
// Example:
//
//	id, err := kernel.UUIDFromString(c.Param("subscriptionId"))
//	if err != nil {
//	    return fmt.Errorf("invalid subscription id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes builds a UUID from its 16-byte form, as stored by the
// database driver. Any other length is an error, as is the nil UUID.
//
// Example:
//
//	var raw []byte
//	if err := row.Scan(&raw); err != nil {
//	    return err
//	}
//	id, err := kernel.UUIDFromBytes(raw)
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical lower-case form, e.g.
// "550e8400-e29b-41d4-a716-446655440000".
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both values hold the same identifier.
//
// Example:
//
//	if stored.ID().IsEqual(requested) {
//	    return stored, nil
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the nil UUID, which is what a zero-value UUID holds.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
