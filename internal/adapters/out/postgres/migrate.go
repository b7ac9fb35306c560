package postgres

import (
	"printdesk/internal/adapters/out/postgres/orderrepo"
	"printdesk/internal/adapters/out/postgres/subscriptionrepo"

	"gorm.io/gorm"
)

// Migrate creates or extends the tables the core reads and writes. The orders
// table is shared with intake; AutoMigrate only adds missing columns and
// indexes, it never drops intake's.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &subscriptionrepo.SubscriptionDTO{})
}
