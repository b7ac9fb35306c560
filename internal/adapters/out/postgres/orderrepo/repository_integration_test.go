package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"printdesk/internal/adapters/out/postgres/orderrepo"
	"printdesk/internal/adapters/out/postgres/pgtest"
	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var submitted = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite runs the repository against a real
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Stop(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(id string, submittedAt time.Time) *order.Order {
	o, err := order.NewOrder(id, order.Customer{Name: "Ada", Email: "ada@example.com"}, submittedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	suite.newOrder("order_1", submitted)

	got, err := suite.repository.Get(ctx, "order_1")

	suite.Require().NoError(err)
	suite.Equal("order_1", got.ID())
	suite.Equal(order.Pending, got.Status())
	suite.Equal("Ada", got.Customer().Name)
	suite.True(got.AssignedStaff().IsEmpty())
	suite.True(submitted.Equal(got.SubmittedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), "missing")

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsClearedFields() {
	ctx := context.Background()
	o := suite.newOrder("order_1", submitted)
	now := submitted.Add(time.Hour)

	_, err := o.Claim("pablo", now)
	suite.Require().NoError(err)
	_, err = o.AssignStaff(kernel.NewStaffSet("evan"), "pablo", now)
	suite.Require().NoError(err)
	price := decimal.RequireFromString("19.99")
	suite.Require().NoError(o.UpdatePrices(&price, nil, "pablo", now))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.Get(ctx, "order_1")
	suite.Require().NoError(err)
	suite.Equal(kernel.StaffID("pablo"), *stored.ClaimedBy())
	suite.Equal([]string{"evan", "pablo"}, stored.AssignedStaff().Strings())
	suite.True(price.Equal(*stored.EstimatedPrice()))

	_, err = stored.Unclaim("pablo", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, stored))

	released, err := suite.repository.Get(ctx, "order_1")
	suite.Require().NoError(err)
	suite.Nil(released.ClaimedBy())
	suite.Equal([]string{"evan"}, released.AssignedStaff().Strings())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	o, err := order.NewOrder("ghost", order.Customer{}, submitted)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NormalisesLegacyRows() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.DB.Exec(`
		INSERT INTO orders (id, status, claimed_by, assigned_staff, submitted_at)
		VALUES ('legacy_1', 'Submitted', 'Pablo', '{evan}', ?),
		       ('legacy_2', NULL, NULL, '{}', ?)`,
		submitted, submitted).Error)

	first, err := suite.repository.Get(ctx, "legacy_1")
	suite.Require().NoError(err)
	suite.Equal(order.Pending, first.Status())
	suite.Equal([]string{"evan", "pablo"}, first.AssignedStaff().Strings())

	second, err := suite.repository.Get(ctx, "legacy_2")
	suite.Require().NoError(err)
	suite.Equal(order.Pending, second.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetNewestUnclaimedForUpdate() {
	ctx := context.Background()
	cutoff := submitted.Add(time.Hour)

	suite.newOrder("old", submitted)
	suite.newOrder("newer", submitted.Add(30*time.Minute))
	suite.newOrder("too_recent", submitted.Add(2*time.Hour))

	claimed := suite.newOrder("claimed", submitted.Add(40*time.Minute))
	_, err := claimed.Claim("pablo", cutoff)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, claimed))

	got, err := suite.repository.GetNewestUnclaimedForUpdate(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Equal("newer", got.ID())

	suite.Require().NoError(got.MarkUnclaimedNotified(cutoff))
	suite.Require().NoError(suite.repository.Update(ctx, got))

	next, err := suite.repository.GetNewestUnclaimedForUpdate(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Equal("old", next.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetNewestUnclaimedForUpdate_SkipsCompleted() {
	ctx := context.Background()
	o := suite.newOrder("done", submitted)
	suite.Require().NoError(o.UpdateStatus(order.Completed, "pablo", submitted))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	_, err := suite.repository.GetNewestUnclaimedForUpdate(ctx, submitted.Add(time.Hour))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
