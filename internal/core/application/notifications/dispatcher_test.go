package notifications_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"printdesk/internal/core/application/notifications"
	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/domain/model/subscription"
	"printdesk/internal/core/domain/services"
	"printdesk/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, s *subscription.Subscription) (*subscription.Subscription, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListAll(ctx context.Context) ([]*subscription.Subscription, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListByStaff(ctx context.Context, staff kernel.StaffSet) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, staff)
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type fakeSender struct {
	mu       sync.Mutex
	outcomes map[string]ports.DeliveryOutcome
	sent     []string
	messages []services.Message
}

func (f *fakeSender) Send(_ context.Context, s *subscription.Subscription, msg services.Message) ports.DeliveryResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, s.Endpoint())
	f.messages = append(f.messages, msg)
	outcome := f.outcomes[s.Endpoint()]
	result := ports.DeliveryResult{Outcome: outcome, StatusCode: 201}
	switch outcome {
	case ports.DeliveryPermanentFailure:
		result.StatusCode = 410
		result.Err = errors.New("gone")
	case ports.DeliveryTransientFailure:
		result.StatusCode = 503
		result.Err = errors.New("unavailable")
	}
	return result
}

func (f *fakeSender) endpoints() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func sub(t *testing.T, staff kernel.StaffID, endpoint string) *subscription.Subscription {
	t.Helper()
	s, err := subscription.NewSubscription(staff, endpoint, subscription.Keys{P256dh: "p", Auth: "a"}, now)
	require.NoError(t, err)
	return s
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("order_7", order.Customer{Name: "Ada"}, now.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_Deliver(t *testing.T) {
	targeting := services.NewNotificationTargeting("https://desk.example.com/orders/%s")

	t.Run("staff event reaches only newly assigned members", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.Claim("pablo", now)
		require.NoError(t, err)
		change, err := o.AssignStaff(kernel.NewStaffSet("pablo", "evan"), "pablo", now)
		require.NoError(t, err)
		event := order.NewEvent(order.EventStaff, o, "pablo", now).WithStaffChange(change)

		evanPhone := sub(t, "evan", "https://push.example.com/evan-phone")
		evanLaptop := sub(t, "evan", "https://push.example.com/evan-laptop")
		repo := new(MockSubscriptionRepository)
		repo.On("ListByStaff", mock.Anything, kernel.NewStaffSet("evan")).
			Return([]*subscription.Subscription{evanPhone, evanLaptop}, nil)
		sender := &fakeSender{}

		notifications.NewDispatcher(targeting, repo, sender, quietLogger(), 1).Deliver(context.Background(), event)

		assert.Equal(t, []string{evanPhone.Endpoint(), evanLaptop.Endpoint()}, sender.endpoints())
		assert.Equal(t, "https://desk.example.com/orders/order_7", sender.messages[0].URL)
		repo.AssertExpectations(t)
	})

	t.Run("new order reaches everyone and prunes dead endpoints", func(t *testing.T) {
		event := order.NewEvent(order.EventNewOrder, newOrder(t), "", now)
		alive := sub(t, "pablo", "https://push.example.com/alive")
		dead := sub(t, "sam", "https://push.example.com/dead")
		flaky := sub(t, "evan", "https://push.example.com/flaky")

		repo := new(MockSubscriptionRepository)
		repo.On("ListAll", mock.Anything).Return([]*subscription.Subscription{alive, dead, flaky}, nil)
		repo.On("Delete", mock.Anything, dead.ID()).Return(nil).Once()
		sender := &fakeSender{outcomes: map[string]ports.DeliveryOutcome{
			dead.Endpoint():  ports.DeliveryPermanentFailure,
			flaky.Endpoint(): ports.DeliveryTransientFailure,
		}}

		notifications.NewDispatcher(targeting, repo, sender, quietLogger(), 1).Deliver(context.Background(), event)

		assert.Len(t, sender.endpoints(), 3)
		repo.AssertExpectations(t)
		repo.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("listing failure sends nothing", func(t *testing.T) {
		event := order.NewEvent(order.EventUnclaimedOrder, newOrder(t), "", now)
		repo := new(MockSubscriptionRepository)
		repo.On("ListAll", mock.Anything).Return([]*subscription.Subscription(nil), errors.New("db down"))
		sender := &fakeSender{}

		notifications.NewDispatcher(targeting, repo, sender, quietLogger(), 1).Deliver(context.Background(), event)

		assert.Empty(t, sender.endpoints())
	})
}

func TestDispatcher_StoreTimeout(t *testing.T) {
	targeting := services.NewNotificationTargeting("")
	waitForDeadline := func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}

	t.Run("hung listing is abandoned after the store timeout", func(t *testing.T) {
		event := order.NewEvent(order.EventNewOrder, newOrder(t), "", now)
		repo := new(MockSubscriptionRepository)
		repo.On("ListAll", mock.Anything).
			Run(waitForDeadline).
			Return([]*subscription.Subscription(nil), context.DeadlineExceeded)
		sender := &fakeSender{}
		d := notifications.NewDispatcher(targeting, repo, sender, quietLogger(), 1,
			notifications.WithStoreTimeout(50*time.Millisecond))

		start := time.Now()
		d.Deliver(context.Background(), event)

		assert.Less(t, time.Since(start), time.Second)
		assert.Empty(t, sender.endpoints())
	})

	t.Run("hung delete does not block remaining recipients", func(t *testing.T) {
		event := order.NewEvent(order.EventNewOrder, newOrder(t), "", now)
		dead := sub(t, "sam", "https://push.example.com/dead")
		alive := sub(t, "pablo", "https://push.example.com/alive")
		repo := new(MockSubscriptionRepository)
		repo.On("ListAll", mock.Anything).Return([]*subscription.Subscription{dead, alive}, nil)
		repo.On("Delete", mock.Anything, dead.ID()).
			Run(waitForDeadline).
			Return(context.DeadlineExceeded).Once()
		sender := &fakeSender{outcomes: map[string]ports.DeliveryOutcome{
			dead.Endpoint(): ports.DeliveryPermanentFailure,
		}}
		d := notifications.NewDispatcher(targeting, repo, sender, quietLogger(), 1,
			notifications.WithStoreTimeout(50*time.Millisecond))

		start := time.Now()
		d.Deliver(context.Background(), event)

		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, []string{dead.Endpoint(), alive.Endpoint()}, sender.endpoints())
		repo.AssertExpectations(t)
	})

	t.Run("store calls carry a deadline even for detached contexts", func(t *testing.T) {
		event := order.NewEvent(order.EventNewOrder, newOrder(t), "", now)
		repo := new(MockSubscriptionRepository)
		var hasDeadline bool
		repo.On("ListAll", mock.Anything).
			Run(func(args mock.Arguments) {
				_, hasDeadline = args.Get(0).(context.Context).Deadline()
			}).
			Return([]*subscription.Subscription(nil), nil)

		notifications.NewDispatcher(targeting, repo, &fakeSender{}, quietLogger(), 1).
			Deliver(context.WithoutCancel(context.Background()), event)

		assert.True(t, hasDeadline)
	})
}

func TestDispatcher_Publish(t *testing.T) {
	targeting := services.NewNotificationTargeting("")

	t.Run("events without audience never reach the store", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		d := notifications.NewDispatcher(targeting, repo, &fakeSender{}, quietLogger(), 1)

		o := newOrder(t)
		d.Publish(context.Background(), order.NewEvent(order.EventClaim, o, "pablo", now))
		d.Publish(context.Background(), order.NewEvent(order.EventPrice, o, "pablo", now))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		require.NoError(t, d.Run(ctx))
		repo.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("worker delivers queued events and full queue drops", func(t *testing.T) {
		s := sub(t, "pablo", "https://push.example.com/p")
		repo := new(MockSubscriptionRepository)
		repo.On("ListAll", mock.Anything).Return([]*subscription.Subscription{s}, nil)
		sender := &fakeSender{}
		d := notifications.NewDispatcher(targeting, repo, sender, quietLogger(), 1)

		event := order.NewEvent(order.EventNewOrder, newOrder(t), "", now)
		d.Publish(context.Background(), event)
		d.Publish(context.Background(), event) // queue of one: dropped

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- d.Run(ctx) }()

		assert.Eventually(t, func() bool { return len(sender.endpoints()) == 1 }, time.Second, 5*time.Millisecond)
		cancel()
		require.NoError(t, <-done)
		assert.Len(t, sender.endpoints(), 1)
	})
}
