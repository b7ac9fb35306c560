// Package subscriptionrepo persists push subscriptions.
package subscriptionrepo

import (
	"time"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/subscription"

	"github.com/google/uuid"
)

// SubscriptionDTO is one row of push_subscriptions. The endpoint is unique:
// one browser registration maps to one row.
type SubscriptionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	StaffID   string    `gorm:"not null;index"`
	Endpoint  string    `gorm:"not null;uniqueIndex"`
	P256dh    string    `gorm:"not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SubscriptionDTO) TableName() string {
	return "push_subscriptions"
}

func fromDomain(s *subscription.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:        s.ID().Bytes(),
		StaffID:   s.StaffID().String(),
		Endpoint:  s.Endpoint(),
		P256dh:    s.Keys().P256dh,
		Auth:      s.Keys().Auth,
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func toDomain(dto SubscriptionDTO) (*subscription.Subscription, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	staffID, err := kernel.NewStaffID(dto.StaffID)
	if err != nil {
		return nil, err
	}

	return subscription.RestoreSubscription(
		id,
		staffID,
		dto.Endpoint,
		subscription.Keys{P256dh: dto.P256dh, Auth: dto.Auth},
		dto.CreatedAt,
		dto.UpdatedAt,
	), nil
}
