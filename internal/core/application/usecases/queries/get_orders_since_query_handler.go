package queries

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// queryTimeout bounds one read when the handler is not given its own.
const queryTimeout = 5 * time.Second

// GetOrdersSinceQueryHandler reads the order list straight from the database,
// bypassing the aggregate repository. An order's change time is its
// last_updated stamp, or submitted_at when staff never touched it.
type GetOrdersSinceQueryHandler struct {
	db       *gorm.DB
	pageSize int
	timeout  time.Duration
}

func NewGetOrdersSinceQueryHandler(db *gorm.DB) GetOrdersSinceQueryHandler {
	return GetOrdersSinceQueryHandler{db: db, pageSize: MaxOrdersPerPage, timeout: queryTimeout}
}

// WithPageSize returns a copy that caps listings at n orders. Values outside
// 1..MaxOrdersPerPage are ignored.
func (h GetOrdersSinceQueryHandler) WithPageSize(n int) GetOrdersSinceQueryHandler {
	if n > 0 && n <= MaxOrdersPerPage {
		h.pageSize = n
	}
	return h
}

// WithTimeout returns a copy whose reads give up after d.
func (h GetOrdersSinceQueryHandler) WithTimeout(d time.Duration) GetOrdersSinceQueryHandler {
	if d > 0 {
		h.timeout = d
	}
	return h
}

// Handle returns one page of snapshots.
//
// Without since the page holds the most recently changed orders, newest
// first. With since it holds the oldest changes after that point, oldest
// first, so a client that polls again from the last ChangedAt it received
// walks every change without gaps.
func (h GetOrdersSinceQueryHandler) Handle(ctx context.Context, query GetOrdersSinceQuery) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	direction := "DESC"
	if query.Since() != nil {
		direction = "ASC"
	}

	sql := `SELECT ` + orderColumns + `
		FROM orders
		WHERE (?::timestamptz IS NULL OR COALESCE(last_updated, submitted_at) > ?::timestamptz)
		ORDER BY COALESCE(last_updated, submitted_at) ` + direction + `, id
		LIMIT ?`

	rows, err := h.db.WithContext(ctx).Raw(sql, query.Since(), query.Since(), h.pageSize).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]order.Snapshot, 0)
	for rows.Next() {
		snapshot, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
