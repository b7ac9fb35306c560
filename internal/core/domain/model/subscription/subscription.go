package subscription

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/pkg/errs"
	"printdesk/internal/pkg/guard"
)

// Domain errors for subscription operations.
var (
	// ErrSubscriptionIsNotConstructed is returned when using a zero-value Subscription.
	ErrSubscriptionIsNotConstructed = errors.New("Subscription must be created via NewSubscription or RestoreSubscription")
)

// Keys are the client's ECDH public key and auth secret, both base64url.
type Keys struct {
	P256dh string
	Auth   string
}

// Subscription is a push endpoint bound to one staff member. The endpoint URL
// identifies it: registering the same endpoint again rebinds it instead of
// creating a second record.
type Subscription struct {
	id        kernel.UUID
	staffID   kernel.StaffID
	endpoint  string
	keys      Keys
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewSubscription validates a registration from staffID.
func NewSubscription(staffID kernel.StaffID, endpoint string, keys Keys, at time.Time) (*Subscription, error) {
	s := &Subscription{
		id:        kernel.NewUUID(),
		staffID:   staffID,
		createdAt: at.UTC(),
		updatedAt: at.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setEndpoint(endpoint),
		s.setKeys(keys),
		validateStaff(staffID),
	); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreSubscription rebuilds a persisted subscription without re-validating it.
func RestoreSubscription(id kernel.UUID, staffID kernel.StaffID, endpoint string, keys Keys, createdAt, updatedAt time.Time) *Subscription {
	return &Subscription{
		id:        id,
		staffID:   staffID,
		endpoint:  endpoint,
		keys:      keys,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}
}

func (s *Subscription) Validate() error {
	return s.guard.Validate(ErrSubscriptionIsNotConstructed)
}

func (s *Subscription) ID() kernel.UUID { return s.id }
func (s *Subscription) StaffID() kernel.StaffID { return s.staffID }
func (s *Subscription) Endpoint() string { return s.endpoint }
func (s *Subscription) Keys() Keys { return s.keys }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }

func (s *Subscription) setEndpoint(endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return errs.NewValueIsRequiredError("endpoint")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("endpoint", errors.New("must be an absolute https URL"))
	}
	s.endpoint = endpoint
	return nil
}

func (s *Subscription) setKeys(keys Keys) error {
	keys.P256dh = strings.TrimSpace(keys.P256dh)
	keys.Auth = strings.TrimSpace(keys.Auth)

	var problems []error
	if keys.P256dh == "" {
		problems = append(problems, errs.NewValueIsRequiredError("keys.p256dh"))
	}
	if keys.Auth == "" {
		problems = append(problems, errs.NewValueIsRequiredError("keys.auth"))
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}
	s.keys = keys
	return nil
}

func validateStaff(staffID kernel.StaffID) error {
	if staffID == "" {
		return errs.NewValueIsRequiredError("staffId")
	}
	return nil
}
