// Package subscription holds the push-notification registration of a staff
// member's browser or device.
package subscription
