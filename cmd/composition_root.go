package cmd

import (
	"time"

	"printdesk/internal/adapters/out/postgres"
	"printdesk/internal/core/application/usecases/commands"
	"printdesk/internal/core/application/usecases/queries"
	"printdesk/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot builds use-case handlers over one connection pool, roster
// and event publisher.
type CompositionRoot struct {
	gormDB             *gorm.DB
	uowFactory         *postgres.GormUnitOfWorkFactory
	roster             ports.StaffRoster
	publisher          ports.EventPublisher
	clock              func() time.Time
	unclaimedThreshold time.Duration
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	roster ports.StaffRoster,
	publisher ports.EventPublisher,
	clock func() time.Time,
) CompositionRoot {
	return CompositionRoot{
		gormDB:             gormDB,
		uowFactory:         postgres.NewGormUnitOfWorkFactory(gormDB),
		roster:             roster,
		publisher:          publisher,
		clock:              clock,
		unclaimedThreshold: configs.UnclaimedThreshold,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.roster, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateUnclaimOrderCommandHandler() commands.UnclaimOrderCommandHandler {
	return commands.NewUnclaimOrderCommandHandler(c.orderUoWFactory(), c.roster, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateAssignStaffCommandHandler() commands.AssignStaffCommandHandler {
	return commands.NewAssignStaffCommandHandler(c.orderUoWFactory(), c.roster, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(c.orderUoWFactory(), c.roster, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateUpdatePriceCommandHandler() commands.UpdatePriceCommandHandler {
	return commands.NewUpdatePriceCommandHandler(c.orderUoWFactory(), c.roster, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateUpdateNotesCommandHandler() commands.UpdateNotesCommandHandler {
	return commands.NewUpdateNotesCommandHandler(c.orderUoWFactory(), c.roster, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateAnnounceOrderCommandHandler() commands.AnnounceOrderCommandHandler {
	return commands.NewAnnounceOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateDetectUnclaimedOrderCommandHandler() commands.DetectUnclaimedOrderCommandHandler {
	return commands.NewDetectUnclaimedOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.clock, c.unclaimedThreshold)
}

func (c *CompositionRoot) CreateRegisterSubscriptionCommandHandler() commands.RegisterSubscriptionCommandHandler {
	var f commands.SubscriptionUoWFactory = FuncSubscriptionUoWFactory(func() commands.SubscriptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterSubscriptionCommandHandler(f, c.roster, c.clock)
}

func (c *CompositionRoot) CreateGetOrdersSinceQueryHandler() queries.GetOrdersSinceQueryHandler {
	return queries.NewGetOrdersSinceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSubscriptionUoWFactory func() commands.SubscriptionUoW

func (f FuncSubscriptionUoWFactory) Create() commands.SubscriptionUoW {
	return f()
}
