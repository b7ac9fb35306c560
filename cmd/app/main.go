package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printdesk/cmd"
	httpin "printdesk/internal/adapters/in/http"
	kafkain "printdesk/internal/adapters/in/kafka"
	"printdesk/internal/adapters/out/events"
	kafkaout "printdesk/internal/adapters/out/kafka"
	"printdesk/internal/adapters/out/live"
	"printdesk/internal/adapters/out/postgres"
	"printdesk/internal/adapters/out/postgres/subscriptionrepo"
	"printdesk/internal/adapters/out/roster"
	"printdesk/internal/adapters/out/webpush"
	"printdesk/internal/core/application/notifications"
	"printdesk/internal/core/domain/services"
	"printdesk/internal/core/ports"
	"printdesk/internal/jobs"
	"printdesk/internal/pkg/tracing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ExporterURL: configs.OTLPEndpoint,
		SampleRate:  configs.TraceSampleRate,
		ServiceName: "printdesk",
		Environment: configs.Environment,
	})
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	staff, err := roster.NewStaticRoster(configs.StaffRoster)
	if err != nil {
		return err
	}

	hub := live.NewHub(live.Config{
		QueueSize:  configs.ViewerQueueSize,
		StaleAfter: configs.ViewerStaleAfter,
	}, time.Now, logger)
	defer hub.Close()

	publishers := []ports.EventPublisher{hub}

	var dispatcher *notifications.Dispatcher
	if configs.PushEnabled() {
		sender := webpush.NewSender(webpush.Config{
			VAPIDPublicKey:  configs.VAPIDPublicKey,
			VAPIDPrivateKey: configs.VAPIDPrivateKey,
			Subscriber:      configs.VAPIDSubject,
			Timeout:         configs.PushTimeout,
		}, nil)
		dispatcher = notifications.NewDispatcher(
			services.NewNotificationTargeting(configs.OrderURL),
			subscriptionrepo.NewGormSubscriptionRepository(gormDB),
			sender,
			logger,
			configs.PushQueueSize,
		)
		publishers = append(publishers, dispatcher)
	} else {
		logger.Warn("VAPID keys not configured, push notifications disabled")
	}

	if configs.KafkaEnabled() {
		producerClient, err := kafkaout.NewProducerClient(configs.KafkaHost, "printdesk")
		if err != nil {
			return err
		}
		defer producerClient.Close()
		publishers = append(publishers, kafkaout.NewOrderChangedProducer(producerClient, configs.KafkaOrderChangedTopic, logger))
	}

	app := cmd.NewCompositionRoot(configs, gormDB, staff, events.NewFanOut(publishers...), time.Now)

	e, err := newWebServer(app, hub, configs, logger)
	if err != nil {
		return err
	}

	var consumer *kafkain.OrderSubmittedConsumer
	if configs.KafkaEnabled() {
		consumer, err = kafkain.NewOrderSubmittedConsumer(
			configs.KafkaHost,
			configs.KafkaConsumerGroup,
			configs.KafkaOrderSubmittedTopic,
			app.CreateAnnounceOrderCommandHandler(),
			logger,
		)
		if err != nil {
			return err
		}
		defer consumer.Close()
	}

	jobManager := jobs.NewJobManager(
		app.CreateDetectUnclaimedOrderCommandHandler(),
		hub,
		jobs.Schedules{Watchdog: configs.WatchdogSchedule, Heartbeat: configs.HeartbeatSchedule},
		time.Now,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort),
		Handler:           tracing.WrapHTTPHandler(e),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		e.Logger.Infof("http server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// Live streams only end when their viewer is removed.
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if dispatcher != nil {
		g.Go(func() error { return dispatcher.Run(gctx) })
	}
	if consumer != nil {
		g.Go(func() error { return consumer.Run(gctx) })
	}

	return g.Wait()
}

func newWebServer(app cmd.CompositionRoot, hub *live.Hub, configs cmd.Config, logger *slog.Logger) (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		ClaimOrder:           app.CreateClaimOrderCommandHandler(),
		UnclaimOrder:         app.CreateUnclaimOrderCommandHandler(),
		AssignStaff:          app.CreateAssignStaffCommandHandler(),
		UpdateStatus:         app.CreateUpdateStatusCommandHandler(),
		UpdatePrice:          app.CreateUpdatePriceCommandHandler(),
		UpdateNotes:          app.CreateUpdateNotesCommandHandler(),
		RegisterSubscription: app.CreateRegisterSubscriptionCommandHandler(),
		ListOrders:           app.CreateGetOrdersSinceQueryHandler(),
		GetOrder:             app.CreateGetOrderQueryHandler(),
	}, hub, live.StreamOptions{}, logger)

	e, err := httpin.NewRouter(server, httpin.RouterConfig{
		JWT: httpin.JWTConfig{
			Secret: []byte(configs.JWTSecret),
			Issuer: configs.JWTIssuer,
		},
		Validate: true,
	}, logger)
	if err != nil {
		return nil, err
	}
	e.Logger.SetLevel(log.INFO)
	return e, nil
}
