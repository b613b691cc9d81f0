package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/subscribers"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/engine"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	sharedApplication "github.com/DHariharanD/Smart-Task-Analyser/internal/shared/application"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
	_ "github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database/postgres" // register driver
	_ "github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database/sqlite"   // register driver
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/eventbus"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/migrations"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/ratelimit"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/config"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Metrics  *observability.InMemoryMetrics
	Health   *observability.HealthRegistry
	Location *time.Location

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis, nil unless REDIS_URL is set and reachable.
	RedisClient *redis.Client
	RateLimiter *ratelimit.Limiter

	// Repositories
	TaskRepo   task.Repository
	OutboxRepo outbox.Repository
	UnitOfWork sharedApplication.UnitOfWork

	// Prioritization
	Engine              *engine.Engine
	AnalyzeTasksHandler *prioritizationQueries.AnalyzeTasksHandler
	SuggestTasksHandler *prioritizationQueries.SuggestTasksHandler
	DependencyGuard     *subscribers.DependencyGuard

	// Task command handlers
	CreateTaskHandler *commands.CreateTaskHandler
	UpdateTaskHandler *commands.UpdateTaskHandler
	DeleteTaskHandler *commands.DeleteTaskHandler

	// Task query handlers
	ListTasksHandler *queries.ListTasksHandler
	GetTaskHandler   *queries.GetTaskHandler
}

// NewContainer opens the task store, applies migrations and wires every
// handler. Redis is optional: when it is missing or unreachable the API runs
// without rate limiting.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  observability.NewInMemoryMetrics(),
		Health:   observability.NewHealthRegistry(5 * time.Second),
		Location: loc,
	}

	driver, err := database.ParseDriver(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}
	conn, err := database.Open(ctx, database.Config{
		Driver:     driver,
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	logger.Info("connected to database", "driver", c.DBDriver)

	if err := migrations.Apply(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))

	factory := NewRepositoryFactory(conn)
	if c.TaskRepo, err = factory.TaskRepository(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if c.OutboxRepo, err = factory.OutboxRepository(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	c.UnitOfWork = database.NewUnitOfWork(conn)

	c.connectRedis(ctx)

	// Create task command handlers
	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpdateTaskHandler = commands.NewUpdateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)

	// Create task query handlers
	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo)
	c.GetTaskHandler = queries.NewGetTaskHandler(c.TaskRepo)

	// Create prioritization handlers
	c.Engine = engine.New(engine.Config{Location: loc})
	c.AnalyzeTasksHandler = prioritizationQueries.NewAnalyzeTasksHandler(c.Engine, c.TaskRepo)
	c.SuggestTasksHandler = prioritizationQueries.NewSuggestTasksHandler(c.Engine, c.TaskRepo)
	c.DependencyGuard = subscribers.NewDependencyGuard(c.TaskRepo, c.Engine.Location(), logger.With("component", "dependency_guard"))

	return c, nil
}

func (c *Container) connectRedis(ctx context.Context) {
	if c.Config.RedisURL == "" {
		return
	}
	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, rate limiting disabled", "error", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("Redis not available, rate limiter will fail open until it is", "error", err)
	} else {
		c.Logger.Info("connected to Redis")
	}
	c.RedisClient = client
	c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))

	if c.Config.RateLimitPerMinute > 0 {
		c.RateLimiter = ratelimit.New(
			ratelimit.NewRedisStore(client),
			ratelimit.Config{Limit: c.Config.RateLimitPerMinute, Window: time.Minute},
			c.Logger.With("component", "ratelimit"),
		)
		c.Health.Register("ratelimit_breaker", observability.BreakerHealthChecker(func() string {
			return c.RateLimiter.State().String()
		}))
	}
}

// EventPublisher returns where the outbox relay should deliver events. With
// RABBITMQ_URL set it is the broker behind a circuit breaker; otherwise an
// in-process bus that feeds the DependencyGuard directly.
func (c *Container) EventPublisher() (eventbus.Publisher, error) {
	if c.Config.RabbitMQURL == "" {
		bus := eventbus.NewInProcessBus(c.Logger.With("component", "inprocess_bus"))
		bus.RegisterConsumer(c.DependencyGuard)
		c.Logger.Info("using in-process event bus")
		return bus, nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if c.Config.IsProduction() {
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
		return eventbus.NewNoopPublisher(c.Logger), nil
	}

	breaker := eventbus.NewBreakerPublisher(publisher, eventbus.DefaultBreakerConfig(), c.Logger)
	c.Health.Register("rabbitmq_breaker", observability.BreakerHealthChecker(breaker.State))
	return breaker, nil
}

// NewOutboxProcessor builds a relay from the outbox to publisher using the
// configured polling and retry settings.
func (c *Container) NewOutboxProcessor(publisher eventbus.Publisher) *outbox.Processor {
	cfg := outbox.DefaultProcessorConfig()
	cfg.PollInterval = c.Config.OutboxPollInterval
	cfg.BatchSize = c.Config.OutboxBatchSize
	cfg.MaxRetries = c.Config.OutboxMaxRetries
	return outbox.NewProcessor(c.OutboxRepo, publisher, cfg, c.Logger.With("component", "outbox_processor"))
}

// Close releases external connections.
func (c *Container) Close() error {
	var errs []error
	if c.RedisClient != nil {
		errs = append(errs, c.RedisClient.Close())
	}
	if c.DBConn != nil {
		errs = append(errs, c.DBConn.Close())
	}
	return errors.Join(errs...)
}
