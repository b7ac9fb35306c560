package commands_test

import (
	"context"
	"sync"
	"time"

	"printdesk/internal/core/application/usecases/commands"
	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/domain/model/subscription"
	"printdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var (
	submittedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	fixedNow    = submittedAt.Add(3 * time.Hour)
)

func clock() time.Time { return fixedNow }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetNewestUnclaimedForUpdate(ctx context.Context, cutoff time.Time) (*order.Order, error) {
	args := m.Called(ctx, cutoff)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, s *subscription.Subscription) (*subscription.Subscription, error) {
	args := m.Called(ctx, s)
	stored, _ := args.Get(0).(*subscription.Subscription)
	return stored, args.Error(1)
}

func (m *MockSubscriptionRepository) ListAll(ctx context.Context) ([]*subscription.Subscription, error) {
	args := m.Called(ctx)
	subs, _ := args.Get(0).([]*subscription.Subscription)
	return subs, args.Error(1)
}

func (m *MockSubscriptionRepository) ListByStaff(ctx context.Context, staff kernel.StaffSet) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, staff)
	subs, _ := args.Get(0).([]*subscription.Subscription)
	return subs, args.Error(1)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSubscriptionUoW struct{ mock.Mock }

func (m *MockSubscriptionUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockSubscriptionUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockSubscriptionUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockSubscriptionUoW) SubscriptionRepository() ports.SubscriptionRepository {
	return m.Called().Get(0).(ports.SubscriptionRepository)
}

type MockSubscriptionUoWFactory struct{ mock.Mock }

func (m *MockSubscriptionUoWFactory) Create() commands.SubscriptionUoW {
	return m.Called().Get(0).(commands.SubscriptionUoW)
}

type staticRoster struct{ members kernel.StaffSet }

func (r staticRoster) Members() kernel.StaffSet { return r.members }

var roster = staticRoster{members: kernel.NewStaffSet("pablo", "evan", "sam")}

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e order.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []order.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]order.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// lockedOrder wires a factory whose single unit of work hands out o from GetForUpdate.
func lockedOrder(o *order.Order) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	repo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

	return factory, uow, repo
}

func restore(p order.RestoreParams) *order.Order {
	if p.ID == "" {
		p.ID = "order_1"
	}
	if p.SubmittedAt.IsZero() {
		p.SubmittedAt = submittedAt
	}
	o, err := order.RestoreOrder(p)
	if err != nil {
		panic(err)
	}
	return o
}

func ptr[T any](v T) *T { return &v }
