package orderrepo

import (
	"context"
	"errors"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository on db, which is either the pool
// or an open transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order row.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the core-owned columns of an existing row, including the ones
// that became NULL, false or empty.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(coreColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", dto.ID)
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and locks its row (SELECT ... FOR UPDATE).
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id string) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetNewestUnclaimedForUpdate locks the newest overdue free order, skipping
// rows other transactions hold. Legacy NULL/blank claimants count as free and
// status is compared the way NormalizeStatus reads it.
func (r *GormOrderRepository) GetNewestUnclaimedForUpdate(ctx context.Context, cutoff time.Time) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("COALESCE(TRIM(claimed_by), '') = ''").
		Where("COALESCE(LOWER(TRIM(status)), '') <> ?", order.Completed.String()).
		Where("unclaimed_notified = ?", false).
		Where("submitted_at < ?", cutoff).
		Order("submitted_at DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "overdue unclaimed")
		}
		return nil, err
	}

	return ToDomain(dto)
}

func (r *GormOrderRepository) first(db *gorm.DB, id string) (*order.Order, error) {
	var dto OrderDTO
	if err := db.Take(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	return ToDomain(dto)
}
