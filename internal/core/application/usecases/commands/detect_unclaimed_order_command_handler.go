package commands

import (
	"context"
	"errors"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
	"printdesk/internal/pkg/errs"
	"printdesk/internal/pkg/tracing"
)

// ErrNoOverdueOrder is returned when no order needs an unclaimed alert.
var ErrNoOverdueOrder = errors.New("no overdue unclaimed order")

// DetectUnclaimedOrderCommandHandler raises the unclaimed alert for the newest
// order that has waited longer than the threshold without a claimant.
//
// The flag is set and committed before the event is published, and the order
// is selected with a skip-locked row lock, so overlapping scans cannot alert
// twice for the same order.
//
// Example:
//
//	snapshot, err := handler.Handle(ctx, NewDetectUnclaimedOrderCommand())
//	switch {
//	case errors.Is(err, ErrNoOverdueOrder):
//	    // nothing to do this tick
//	case err != nil:
//	    log.Printf("scan failed: %v", err)
//	default:
//	    log.Printf("alerted on %s", snapshot.ID)
//	}
type DetectUnclaimedOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      func() time.Time
	threshold  time.Duration
}

func NewDetectUnclaimedOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock func() time.Time,
	threshold time.Duration,
) DetectUnclaimedOrderCommandHandler {
	return DetectUnclaimedOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clockOrDefault(clock),
		threshold:  threshold,
	}
}

func (h DetectUnclaimedOrderCommandHandler) Handle(ctx context.Context, command DetectUnclaimedOrderCommand) (order.Snapshot, error) {
	if err := command.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	ctx, span := tracing.StartApplication(ctx, "DetectUnclaimedOrder")
	defer span.End()

	now := h.clock()
	o, err := h.markNewestOverdue(ctx, now.Add(-h.threshold))
	if err != nil {
		if !errors.Is(err, ErrNoOverdueOrder) {
			tracing.Fail(span, err)
		}
		return order.Snapshot{}, err
	}

	event := order.NewEvent(order.EventUnclaimedOrder, o, "", now)
	h.publisher.Publish(ctx, event)
	return event.Order, nil
}

func (h DetectUnclaimedOrderCommandHandler) markNewestOverdue(ctx context.Context, cutoff time.Time) (*order.Order, error) {
	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(txCtx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(txCtx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetNewestUnclaimedForUpdate(txCtx, cutoff)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoOverdueOrder
	}
	if err != nil {
		return nil, err
	}

	if err = o.MarkUnclaimedNotified(cutoff); err != nil {
		return nil, err
	}

	if err = repo.Update(txCtx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(txCtx); err != nil {
		return nil, err
	}

	return o, nil
}
