// Package orderrepo maps the order aggregate onto the orders table shared
// with intake.
package orderrepo

import (
	"time"

	"printdesk/internal/core/domain/model/order"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table.
//
// Status and claimed_by are nullable because rows written by the legacy
// intake form carry neither. Intake owns the customer columns and
// submitted_at; the core never writes them back.
type OrderDTO struct {
	ID                string              `gorm:"primaryKey"`
	Status            *string             `gorm:"index"`
	ClaimedBy         *string             `gorm:"index"`
	AssignedStaff     pq.StringArray      `gorm:"type:text[];not null;default:'{}'"`
	EstimatedPrice    decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	AssignedPrice     decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	StaffNotes        string              `gorm:"not null;default:''"`
	CustomerName      string
	Email             string
	Phone             string
	CustomerNotes     string
	UpdatedBy         *string
	LastUpdated       *time.Time `gorm:"index"`
	UnclaimedNotified bool       `gorm:"not null;default:false"`
	SubmittedAt       time.Time  `gorm:"not null;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// coreColumns are the columns Update writes. Everything else belongs to intake.
var coreColumns = []string{
	"status",
	"claimed_by",
	"assigned_staff",
	"estimated_price",
	"assigned_price",
	"staff_notes",
	"updated_by",
	"last_updated",
	"unclaimed_notified",
}

func fromDomain(o *order.Order) OrderDTO {
	status := o.Status().String()
	customer := o.Customer()

	dto := OrderDTO{
		ID:                o.ID(),
		Status:            &status,
		AssignedStaff:     pq.StringArray(o.AssignedStaff().Strings()),
		EstimatedPrice:    nullDecimal(o.EstimatedPrice()),
		AssignedPrice:     nullDecimal(o.AssignedPrice()),
		StaffNotes:        o.StaffNotes(),
		CustomerName:      customer.Name,
		Email:             customer.Email,
		Phone:             customer.Phone,
		CustomerNotes:     customer.Notes,
		LastUpdated:       o.LastUpdated(),
		UnclaimedNotified: o.UnclaimedNotified(),
		SubmittedAt:       o.SubmittedAt(),
	}
	if c := o.ClaimedBy(); c != nil {
		v := c.String()
		dto.ClaimedBy = &v
	}
	if u := o.UpdatedBy(); u != nil {
		v := u.String()
		dto.UpdatedBy = &v
	}
	return dto
}

// ToDomain rebuilds the aggregate from a row. Exported for the read side,
// which scans the same columns.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	return order.RestoreOrder(order.RestoreParams{
		ID:             dto.ID,
		Status:         dto.Status,
		ClaimedBy:      dto.ClaimedBy,
		AssignedStaff:  dto.AssignedStaff,
		EstimatedPrice: decimalPtr(dto.EstimatedPrice),
		AssignedPrice:  decimalPtr(dto.AssignedPrice),
		StaffNotes:     dto.StaffNotes,
		Customer: order.Customer{
			Name:  dto.CustomerName,
			Email: dto.Email,
			Phone: dto.Phone,
			Notes: dto.CustomerNotes,
		},
		UpdatedBy:         dto.UpdatedBy,
		LastUpdated:       dto.LastUpdated,
		UnclaimedNotified: dto.UnclaimedNotified,
		SubmittedAt:       dto.SubmittedAt,
	})
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
