package commands

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
	"printdesk/internal/pkg/errs"
	"printdesk/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// storeTimeout bounds one store transaction. It is applied to a context
// detached from the caller, so a client disconnect cannot abort a mutation
// halfway through.
const storeTimeout = 5 * time.Second

// mutation runs the predicate and the change on a locked order. It reports
// whether anything changed; an unchanged order is not written.
type mutation func(o *order.Order) (changed bool, err error)

// conditionalUpdate is the compare-and-swap primitive every order command is
// built on: lock the row, apply mutate, write, commit. Concurrent callers for
// the same order serialise on the row lock, so mutate always sees the latest
// committed state.
//
// A failed predicate rolls back and returns the domain error unchanged.
func conditionalUpdate(ctx context.Context, f OrderUoWFactory, operation, orderID string, mutate mutation) (*order.Order, bool, error) {
	ctx, span := tracing.StartApplication(ctx, operation, attribute.String("order.id", orderID))
	defer span.End()

	o, changed, err := runConditionalUpdate(ctx, f, orderID, mutate)
	tracing.Fail(span, err)
	span.SetAttributes(attribute.Bool("order.changed", changed))
	return o, changed, err
}

func runConditionalUpdate(ctx context.Context, f OrderUoWFactory, orderID string, mutate mutation) (*order.Order, bool, error) {
	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	uow := f.Create()
	if err := uow.Begin(txCtx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(txCtx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(txCtx, orderID)
	if err != nil {
		return nil, false, err
	}

	changed, err := mutate(o)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return o, false, nil
	}

	if err = repo.Update(txCtx, o); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(txCtx); err != nil {
		return nil, false, err
	}

	return o, true, nil
}

// checkRoster rejects any id that is not on the roster, listing all of them.
func checkRoster(roster ports.StaffRoster, ids ...kernel.StaffID) error {
	members := roster.Members()

	var unknown []string
	for _, id := range ids {
		if !members.Contains(id) {
			unknown = append(unknown, id.String())
		}
	}
	if len(unknown) > 0 {
		return errs.NewInvalidMembersError(unknown)
	}
	return nil
}

func clockOrDefault(clock func() time.Time) func() time.Time {
	if clock == nil {
		return time.Now
	}
	return clock
}
