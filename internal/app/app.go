package app

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PayPalReconciler/config"
	"PayPalReconciler/internal/controller/rest"
	"PayPalReconciler/internal/controller/rest/handlers"
	"PayPalReconciler/internal/domain/order"
	"PayPalReconciler/internal/external/kafka"
	"PayPalReconciler/internal/external/opensearch"
	"PayPalReconciler/internal/external/paypal"
	"PayPalReconciler/internal/external/redis"
	"PayPalReconciler/internal/repo/memory"
	order_repo "PayPalReconciler/internal/repo/order"
	"PayPalReconciler/internal/repo/order_eventsink"
	"PayPalReconciler/internal/webhook"
	"PayPalReconciler/pkg/health"
	"PayPalReconciler/pkg/logger"
	"PayPalReconciler/pkg/postgres"

	"github.com/gin-gonic/gin"
)

//go:embed migrations/*.sql
var MIGRATION_FS embed.FS

const shutdownTimeout = 10 * time.Second

func Run(cfg config.Config) {
	l := logger.Setup(logger.Options{
		Level:   cfg.LogLevel,
		Console: cfg.LogFormat == "console",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, l); err != nil {
		l.Error("Service stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	l.Info("Service stopped")
}

// Service is the wired application. Close releases what New opened.
type Service struct {
	Engine  *gin.Engine
	closers []func()
}

func (s *Service) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// New wires storage, sinks, the PayPal client and the webhook pipeline onto
// a gin engine. In kafka mode it also starts the consumer bound to ctx.
func New(ctx context.Context, cfg config.Config, l *slog.Logger) (*Service, error) {
	svc := &Service{}
	healthRegistry := health.NewRegistry()

	orders, pool, err := openStorage(cfg, l, healthRegistry)
	if err != nil {
		return nil, err
	}
	if pool != nil {
		svc.closers = append(svc.closers, pool.Close)
	}

	events, err := openEventSink(ctx, cfg, pool, healthRegistry)
	if err != nil {
		svc.Close()
		return nil, err
	}

	payPalClient := paypal.NewClient(paypal.Config{
		BaseURL:        cfg.PayPal.BaseURL,
		ClientID:       cfg.PayPal.ClientID,
		ClientSecret:   cfg.PayPal.ClientSecret,
		Timeout:        cfg.PayPal.Timeout,
		RetryAttempts:  cfg.PayPal.RetryAttempts,
		RetryBaseDelay: cfg.PayPal.RetryBaseDelay,
		RetryMaxDelay:  cfg.PayPal.RetryMaxDelay,
	}, l)
	svc.closers = append(svc.closers, func() { _ = payPalClient.Close() })

	registry := webhook.DefaultRegistry()
	dispatcher := webhook.NewDispatcher(registry, webhook.Deps{
		Orders: orders,
		PayPal: payPalClient,
		Events: events,
		Logger: l,
	})

	var processor webhook.Processor
	switch cfg.WebhookMode {
	case config.WebhookModeKafka:
		l.Info("Webhook mode: kafka", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaWebhooksTopic))
		publisher := kafka.NewPublisher(l, cfg.KafkaBrokers, cfg.KafkaWebhooksTopic)
		svc.closers = append(svc.closers, func() { _ = publisher.Close() })
		healthRegistry.Register(health.NewKafkaChecker(cfg.KafkaBrokers, cfg.KafkaWebhooksTopic))

		processor = webhook.NewAsyncProcessor(publisher, registry)
		StartWorkers(ctx, l, cfg, dispatcher)
	default:
		var opts []webhook.SyncOption
		if cfg.RedisURL != "" {
			client, err := redis.NewClient(cfg.RedisURL)
			if err != nil {
				svc.Close()
				return nil, fmt.Errorf("app - New - redis.NewClient: %w", err)
			}
			svc.closers = append(svc.closers, func() { _ = client.Close() })
			healthRegistry.Register(health.Optional(health.NewRedisChecker(client)))

			guard := webhook.NewDeliveryGuard(redis.NewDeliveryStore(client), cfg.DeliveryLease, cfg.DeliveryTTL, l)
			opts = append(opts, webhook.WithDeliveryGuard(guard))
			l.Info("Delivery de-duplication enabled", slog.Duration("ttl", cfg.DeliveryTTL))
		}
		processor = webhook.NewSyncProcessor(dispatcher, opts...)
	}

	svc.Engine = NewGinEngine(l)
	router := rest.NewRouter(
		handlers.NewWebhookHandler(processor, cfg.WebhookMode == config.WebhookModeKafka, l),
		handlers.NewOrderHandler(orders, events, l),
		healthRegistry,
	)
	router.SetUp(svc.Engine)

	l.Info("Webhook handlers registered", slog.Any("event_types", registry.EventTypes()))
	return svc, nil
}

func run(ctx context.Context, cfg config.Config, l *slog.Logger) error {
	svc, err := New(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer svc.Close()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           svc.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		l.Info("Starting HTTP server", slog.Int("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	l.Info("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// openStorage returns a nil pool for the memory driver.
func openStorage(cfg config.Config, l *slog.Logger, hr *health.Registry) (order.OrderRepo, *postgres.Postgres, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		l.Warn("Using in-memory storage, state is lost on restart")
		return memory.NewOrderRepo(), nil, nil
	}

	pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		return nil, nil, fmt.Errorf("app - New - postgres.New: %w", err)
	}

	if err := ApplyMigrations(cfg.PgURL, MIGRATION_FS); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("app - New - ApplyMigrations: %w", err)
	}

	hr.Register(health.NewPostgresChecker(pool.Pool))
	return order_repo.NewPgOrderRepo(pool), pool, nil
}

func openEventSink(ctx context.Context, cfg config.Config, pool *postgres.Postgres, hr *health.Registry) (order.EventSink, error) {
	switch cfg.EventSink {
	case config.EventSinkPostgres:
		return order_eventsink.NewPgOrderEventRepo(pool.Pool, pool.Builder), nil
	case config.EventSinkOpenSearch:
		client, err := opensearch.NewClient(cfg.OpensearchUrls)
		if err != nil {
			return nil, fmt.Errorf("app - New - opensearch.NewClient: %w", err)
		}
		hr.Register(health.Optional(health.NewOpenSearchChecker(client)))
		sink, err := opensearch.NewOrderEventSink(ctx, client, cfg.OpensearchIndexOrders)
		if err != nil {
			return nil, fmt.Errorf("app - New - opensearch.NewOrderEventSink: %w", err)
		}
		return sink, nil
	case config.EventSinkMemory:
		return memory.NewEventSink(), nil
	default:
		return order.NopEventSink{}, nil
	}
}
