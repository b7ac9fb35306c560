package commands

import (
	"errors"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/subscription"
	"printdesk/internal/pkg/guard"
)

var ErrRegisterSubscriptionCommandIsNotConstructed = errors.New(
	"RegisterSubscriptionCommand must be created via NewRegisterSubscriptionCommand constructor",
)

// RegisterSubscriptionCommand binds a push endpoint to the calling staff member.
// Endpoint and key checks happen in the handler when the subscription is
// built, so an insecure or malformed endpoint fails with errs.ErrValueIsInvalid
// before any store access.
//
// Example:
//
//	cmd, err := NewRegisterSubscriptionCommand(claims.Subject, body.Endpoint, body.Keys.P256dh, body.Keys.Auth)
//	if err != nil {
//	    return err
//	}
//	id, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	return c.JSON(http.StatusCreated, map[string]string{"id": id.String()})
type RegisterSubscriptionCommand struct {
	staffID  kernel.StaffID
	endpoint string
	keys     subscription.Keys

	guard guard.ConstructorGuard
}

// NewRegisterSubscriptionCommand canonicalises the staff id.
func NewRegisterSubscriptionCommand(staffID, endpoint, p256dh, auth string) (RegisterSubscriptionCommand, error) {
	id, err := kernel.NewStaffID(staffID)
	if err != nil {
		return RegisterSubscriptionCommand{}, err
	}

	return RegisterSubscriptionCommand{
		staffID:  id,
		endpoint: endpoint,
		keys:     subscription.Keys{P256dh: p256dh, Auth: auth},
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterSubscriptionCommand) Validate() error {
	return c.guard.Validate(ErrRegisterSubscriptionCommandIsNotConstructed)
}

func (c RegisterSubscriptionCommand) StaffID() kernel.StaffID { return c.staffID }
func (c RegisterSubscriptionCommand) Endpoint() string { return c.endpoint }
func (c RegisterSubscriptionCommand) Keys() subscription.Keys { return c.keys }
