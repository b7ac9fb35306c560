// Package webpush delivers notifications through the Web Push protocol.
package webpush

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"printdesk/internal/core/domain/model/subscription"
	"printdesk/internal/core/domain/services"
	"printdesk/internal/core/ports"
	"printdesk/internal/pkg/tracing"

	webpushgo "github.com/SherClockHolmes/webpush-go"
	"go.opentelemetry.io/otel/attribute"
)

type Config struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	// Subscriber is the contact (mailto: or https URL) sent in the VAPID claim.
	Subscriber string
	TTL        time.Duration
	Timeout    time.Duration
}

// Sender implements ports.PushSender.
type Sender struct {
	cfg    Config
	client *http.Client
}

// NewSender creates a sender. A nil client gets one bounded by cfg.Timeout.
func NewSender(cfg Config, client *http.Client) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Sender{cfg: cfg, client: client}
}

// Send encrypts msg for s and posts it to the push service. 404 and 410 mean
// the browser dropped the subscription; every other failure is transient.
func (s *Sender) Send(ctx context.Context, sub *subscription.Subscription, msg services.Message) ports.DeliveryResult {
	ctx, span := tracing.StartInfrastructure(ctx, "SendPush", tracing.SubLayerPush)
	defer span.End()
	span.SetAttributes(attribute.String("subscription.id", sub.ID().String()))

	payload, err := json.Marshal(msg)
	if err != nil {
		tracing.Fail(span, err)
		return ports.DeliveryResult{Outcome: ports.DeliveryTransientFailure, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	keys := sub.Keys()
	resp, err := webpushgo.SendNotificationWithContext(ctx, payload, &webpushgo.Subscription{
		Endpoint: sub.Endpoint(),
		Keys:     webpushgo.Keys{P256dh: keys.P256dh, Auth: keys.Auth},
	}, &webpushgo.Options{
		HTTPClient:      s.client,
		Subscriber:      s.cfg.Subscriber,
		TTL:             int(s.cfg.TTL.Seconds()),
		Urgency:         webpushgo.UrgencyHigh,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
	})
	if err != nil {
		tracing.Fail(span, err)
		return ports.DeliveryResult{Outcome: ports.DeliveryTransientFailure, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	result := ports.DeliveryResult{StatusCode: resp.StatusCode}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result.Outcome = ports.DeliveryOk
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		result.Outcome = ports.DeliveryPermanentFailure
		result.Err = fmt.Errorf("push service answered %d", resp.StatusCode)
	default:
		result.Outcome = ports.DeliveryTransientFailure
		result.Err = fmt.Errorf("push service answered %d", resp.StatusCode)
		tracing.Fail(span, result.Err)
	}
	return result
}
