package services

import (
	"fmt"
	"strings"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/domain/model/subscription"
)

// AudienceKind says who should hear about an event.
type AudienceKind int

const (
	// AudienceNone: the event is broadcast to viewers only.
	AudienceNone AudienceKind = iota
	// AudienceEveryone: every registered subscription.
	AudienceEveryone
	// AudienceStaff: only subscriptions bound to Audience.Staff.
	AudienceStaff
)

// Audience is the resolved recipient set of one event.
type Audience struct {
	Kind  AudienceKind
	Staff kernel.StaffSet
}

// IsEmpty reports whether nobody is to be notified.
func (a Audience) IsEmpty() bool {
	return a.Kind == AudienceNone || (a.Kind == AudienceStaff && a.Staff.IsEmpty())
}

// Message is the push payload shown by the client.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// NotificationTargeting decides who receives a push notification for an
// event and what it says.
//
// Business rules:
//   - new_order and unclaimed_order go to every subscription
//   - staff goes only to members added by that assignment; members who were
//     already assigned, and members removed, are not notified
//   - claim, unclaim, status, price and notes are not pushed
type NotificationTargeting struct {
	orderURL string
}

// NewNotificationTargeting builds the service. orderURL is a format with one
// %s verb for the order id, e.g. "https://desk.example.com/orders/%s".
func NewNotificationTargeting(orderURL string) NotificationTargeting {
	return NotificationTargeting{orderURL: orderURL}
}

// Audience resolves the recipients of e.
func (t NotificationTargeting) Audience(e order.Event) Audience {
	switch e.Type {
	case order.EventNewOrder, order.EventUnclaimedOrder:
		return Audience{Kind: AudienceEveryone}
	case order.EventStaff:
		if e.Staff == nil {
			return Audience{Kind: AudienceNone}
		}
		return Audience{Kind: AudienceStaff, Staff: e.Staff.NewlyAssigned()}
	default:
		return Audience{Kind: AudienceNone}
	}
}

// Recipients filters subs down to the audience of e.
func (t NotificationTargeting) Recipients(e order.Event, subs []*subscription.Subscription) []*subscription.Subscription {
	audience := t.Audience(e)
	if audience.IsEmpty() {
		return nil
	}

	out := make([]*subscription.Subscription, 0, len(subs))
	for _, s := range subs {
		if audience.Kind == AudienceEveryone || audience.Staff.Contains(s.StaffID()) {
			out = append(out, s)
		}
	}
	return out
}

// Message renders the push payload for e.
func (t NotificationTargeting) Message(e order.Event) Message {
	snap := e.Order
	customer := snap.CustomerName
	if customer == "" {
		customer = "a customer"
	}

	msg := Message{URL: t.urlFor(snap.ID)}
	switch e.Type {
	case order.EventNewOrder:
		msg.Title = "New print order"
		msg.Body = fmt.Sprintf("Order %s from %s is waiting to be claimed", snap.ID, customer)
	case order.EventUnclaimedOrder:
		msg.Title = "Order still unclaimed"
		msg.Body = fmt.Sprintf("Order %s from %s has not been picked up yet", snap.ID, customer)
	case order.EventStaff:
		msg.Title = "You were assigned an order"
		if e.Actor != "" {
			msg.Body = fmt.Sprintf("%s added you to order %s (%s)", e.Actor, snap.ID, customer)
		} else {
			msg.Body = fmt.Sprintf("You were added to order %s (%s)", snap.ID, customer)
		}
	default:
		msg.Title = fmt.Sprintf("Order %s updated", snap.ID)
		msg.Body = fmt.Sprintf("Status: %s", snap.Status)
	}
	return msg
}

func (t NotificationTargeting) urlFor(orderID string) string {
	if t.orderURL == "" {
		return "/"
	}
	if !strings.Contains(t.orderURL, "%s") {
		return t.orderURL
	}
	return fmt.Sprintf(t.orderURL, orderID)
}
