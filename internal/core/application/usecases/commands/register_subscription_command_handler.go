package commands

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/subscription"
	"printdesk/internal/core/ports"
)

// RegisterSubscriptionCommandHandler stores push subscriptions. Registering a
// known endpoint again rebinds it to the caller and refreshes its keys.
type RegisterSubscriptionCommandHandler struct {
	uowFactory SubscriptionUoWFactory
	roster     ports.StaffRoster
	clock      func() time.Time
}

func NewRegisterSubscriptionCommandHandler(
	uowFactory SubscriptionUoWFactory,
	roster ports.StaffRoster,
	clock func() time.Time,
) RegisterSubscriptionCommandHandler {
	return RegisterSubscriptionCommandHandler{
		uowFactory: uowFactory,
		roster:     roster,
		clock:      clockOrDefault(clock),
	}
}

// Handle returns the id of the stored subscription. The transaction runs
// detached from ctx under the same store timeout as the order commands.
func (h RegisterSubscriptionCommandHandler) Handle(ctx context.Context, command RegisterSubscriptionCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := checkRoster(h.roster, command.StaffID()); err != nil {
		return kernel.UUID{}, err
	}

	sub, err := subscription.NewSubscription(command.StaffID(), command.Endpoint(), command.Keys(), h.clock())
	if err != nil {
		return kernel.UUID{}, err
	}

	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = uow.Begin(txCtx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(txCtx)
	}()

	stored, err := uow.SubscriptionRepository().Upsert(txCtx, sub)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(txCtx); err != nil {
		return kernel.UUID{}, err
	}

	return stored.ID(), nil
}
