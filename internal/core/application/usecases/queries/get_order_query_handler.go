package queries

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, timeout: queryTimeout}
}

// WithTimeout returns a copy whose reads give up after d.
func (h GetOrderQueryHandler) WithTimeout(d time.Duration) GetOrderQueryHandler {
	if d > 0 {
		h.timeout = d
	}
	return h
}

// Handle returns *errs.ObjectNotFoundError when no order has the id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	rows, err := h.db.WithContext(ctx).
		Raw(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, query.OrderID()).
		Rows()
	if err != nil {
		return order.Snapshot{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return order.Snapshot{}, err
		}
		return order.Snapshot{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}

	return scanOrder(rows)
}
