package queries

import (
	"database/sql"
	"time"

	"printdesk/internal/core/domain/model/order"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const orderColumns = `
	id,
	status,
	claimed_by,
	assigned_staff,
	estimated_price,
	assigned_price,
	staff_notes,
	customer_name,
	email,
	phone,
	customer_notes,
	updated_by,
	last_updated,
	unclaimed_notified,
	submitted_at`

// scanOrder reads one row selected with orderColumns. The row goes through
// RestoreOrder so readers see normalised status and assignment.
func scanOrder(rows *sql.Rows) (order.Snapshot, error) {
	var (
		p              order.RestoreParams
		assigned       pq.StringArray
		estimated      decimal.NullDecimal
		agreed         decimal.NullDecimal
		staffNotes     sql.NullString
		customerName   sql.NullString
		email          sql.NullString
		phone          sql.NullString
		customerNotes  sql.NullString
		lastUpdated    sql.NullTime
		unclaimedAlert sql.NullBool
		submittedAt    time.Time
	)

	err := rows.Scan(
		&p.ID,
		&p.Status,
		&p.ClaimedBy,
		&assigned,
		&estimated,
		&agreed,
		&staffNotes,
		&customerName,
		&email,
		&phone,
		&customerNotes,
		&p.UpdatedBy,
		&lastUpdated,
		&unclaimedAlert,
		&submittedAt,
	)
	if err != nil {
		return order.Snapshot{}, err
	}

	p.AssignedStaff = assigned
	if estimated.Valid {
		p.EstimatedPrice = &estimated.Decimal
	}
	if agreed.Valid {
		p.AssignedPrice = &agreed.Decimal
	}
	p.StaffNotes = staffNotes.String
	p.Customer = order.Customer{
		Name:  customerName.String,
		Email: email.String,
		Phone: phone.String,
		Notes: customerNotes.String,
	}
	if lastUpdated.Valid {
		at := lastUpdated.Time.UTC()
		p.LastUpdated = &at
	}
	p.UnclaimedNotified = unclaimedAlert.Bool
	p.SubmittedAt = submittedAt

	o, err := order.RestoreOrder(p)
	if err != nil {
		return order.Snapshot{}, err
	}
	return o.Snapshot(), nil
}
