package bootstrap

import (
	"context"

	"subcontrol-be/internal/config"
	"subcontrol-be/internal/controller"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/service"
	"subcontrol-be/pkg/admin/dashboard"
	adminEvents "subcontrol-be/pkg/admin/events"
	"subcontrol-be/pkg/admin/subscription"

	pktNats "subcontrol-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Logger    logger.ILogger
	JwtSecret string

	AuthService service.IAuthService

	// Controllers
	AuthController         controller.IAuthController
	DashboardController    controller.IDashboardController
	CustomerController     controller.ICustomerController
	PlanController         controller.IPlanController
	SubscriptionController controller.ISubscriptionController
	PaymentController      controller.IPaymentController

	closers []func() error
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{
		Logger:    sysLogger,
		JwtSecret: cfg.Auth.JwtSecret,
	}

	uowFactory, closeStore, err := OpenStore(cfg, sysLogger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, closeStore)

	// 2. Event Bus
	// NATS JetStream when configured, otherwise an in-process channel.
	var sink adminEvents.Sink
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("EVENTS", "NATS unavailable, events stay in process", map[string]interface{}{"error": err.Error()})
		} else {
			sink = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}
	if sink == nil {
		pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
		sink = adminEvents.NewChannelSink(pubSub)
		c.closers = append(c.closers, pubSub.Close)
		if err := adminEvents.LogEvents(context.Background(), pubSub, sysLogger); err != nil {
			return nil, err
		}
	}
	publisher := adminEvents.NewBusPublisher(sink, sysLogger)

	// 3. Redis (token deny-list)
	rdb := connectRedis(cfg.App.RedisURL, sysLogger)
	if rdb != nil {
		c.closers = append(c.closers, rdb.Close)
	}

	// 4. Domain components
	subscriptionManager := subscription.NewManager(sysLogger, publisher)
	dashboardAggregator := dashboard.NewAggregator(sysLogger, subscriptionManager, cfg.App.DashboardCacheTTL)

	// 5. Services
	authService := service.NewAuthService(cfg.Auth, rdb, sysLogger)
	customerService := service.NewCustomerService(uowFactory, dashboardAggregator, sysLogger)
	planService := service.NewPlanService(uowFactory, dashboardAggregator, sysLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, subscriptionManager, dashboardAggregator, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, subscriptionManager, dashboardAggregator)
	dashboardService := service.NewDashboardService(uowFactory, dashboardAggregator)

	// 6. Controllers
	c.AuthService = authService
	c.AuthController = controller.NewAuthController(authService)
	c.DashboardController = controller.NewDashboardController(dashboardService)
	c.CustomerController = controller.NewCustomerController(customerService)
	c.PlanController = controller.NewPlanController(planService)
	c.SubscriptionController = controller.NewSubscriptionController(subscriptionService)
	c.PaymentController = controller.NewPaymentController(paymentService)

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("SERVER", "Close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	_ = c.Logger.Sync()
}

// connectRedis returns nil when Redis is not configured or does not answer a ping.
func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("AUTH", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("AUTH", "Redis unavailable, token revocations stay in process", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
