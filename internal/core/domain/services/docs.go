// Package services holds domain logic that spans aggregates.
//
// The package includes:
//   - NotificationTargeting: maps an order event to the subscriptions that
//     should receive a push notification and renders the message
package services
