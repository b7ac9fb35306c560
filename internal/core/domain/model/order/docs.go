// Package order holds the print-order aggregate.
//
// The package includes:
//   - Order: identity, ownership (claim and assigned staff), prices, notes and audit stamps
//   - Status: the five workflow states and normalisation of legacy values
//   - Event and Snapshot: what is published after a mutation commits
//
// Key business rules:
//   - At most one staff member holds the claim, and the claimant is always assigned
//   - Completed orders cannot be claimed, released or reassigned
//   - Missing or legacy "submitted" statuses read as pending
//   - The unclaimed alert fires at most once until ownership or assignment changes
package order
