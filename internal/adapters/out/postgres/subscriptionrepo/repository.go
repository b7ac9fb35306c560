package subscriptionrepo

import (
	"context"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/subscription"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM.
type GormSubscriptionRepository struct {
	db *gorm.DB
}

func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Upsert inserts s or, when its endpoint is already registered, rebinds the
// existing row to s's staff member and keys.
func (r *GormSubscriptionRepository) Upsert(ctx context.Context, s *subscription.Subscription) (*subscription.Subscription, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(s)
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"staff_id", "p256dh", "auth", "updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return nil, err
	}

	var stored SubscriptionDTO
	if err = db.Take(&stored, "endpoint = ?", dto.Endpoint).Error; err != nil {
		return nil, err
	}
	return toDomain(stored)
}

func (r *GormSubscriptionRepository) ListAll(ctx context.Context) ([]*subscription.Subscription, error) {
	var dtos []SubscriptionDTO
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormSubscriptionRepository) ListByStaff(ctx context.Context, staff kernel.StaffSet) ([]*subscription.Subscription, error) {
	if staff.IsEmpty() {
		return []*subscription.Subscription{}, nil
	}

	var dtos []SubscriptionDTO
	err := r.db.WithContext(ctx).
		Where("staff_id IN ?", staff.Strings()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormSubscriptionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&SubscriptionDTO{}, "id = ?", id.Bytes()).Error
}

func toDomainList(dtos []SubscriptionDTO) ([]*subscription.Subscription, error) {
	out := make([]*subscription.Subscription, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
