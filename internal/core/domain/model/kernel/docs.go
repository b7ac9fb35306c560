// Package kernel holds the value objects shared by the printdesk aggregates:
//   - UUID: identifiers for records the core creates itself
//   - StaffID: a case-folded staff identifier
//   - StaffSet: an order-irrelevant set of staff identifiers with merge and diff
//
// All values are immutable and safe to share between goroutines.
package kernel
