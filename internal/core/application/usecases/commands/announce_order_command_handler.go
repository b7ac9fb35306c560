package commands

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
	"printdesk/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// AnnounceOrderCommandHandler publishes new_order for an order intake has
// just stored. It writes nothing.
type AnnounceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      func() time.Time
}

func NewAnnounceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock func() time.Time,
) AnnounceOrderCommandHandler {
	return AnnounceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clockOrDefault(clock),
	}
}

func (h AnnounceOrderCommandHandler) Handle(ctx context.Context, command AnnounceOrderCommand) (order.Snapshot, error) {
	if err := command.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	ctx, span := tracing.StartApplication(ctx, "AnnounceOrder", attribute.String("order.id", command.OrderID()))
	defer span.End()

	o, err := h.load(ctx, command.OrderID())
	if err != nil {
		tracing.Fail(span, err)
		return order.Snapshot{}, err
	}

	event := order.NewEvent(order.EventNewOrder, o, "", h.clock())
	h.publisher.Publish(ctx, event)
	return event.Order, nil
}

func (h AnnounceOrderCommandHandler) load(ctx context.Context, orderID string) (*order.Order, error) {
	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(txCtx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(txCtx)
	}()

	return uow.OrderRepository().Get(txCtx, orderID)
}
