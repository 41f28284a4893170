package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/pomanager/po-admin/internal/dal/backend"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iauditrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iproviderrepo"
	"github.com/pomanager/po-admin/internal/dal/rabbitmq"
	redisclient "github.com/pomanager/po-admin/internal/dal/redis"
	auditrepo "github.com/pomanager/po-admin/internal/dal/repositories/audit"
	orderrest "github.com/pomanager/po-admin/internal/dal/repositories/order/rest"
	itemrest "github.com/pomanager/po-admin/internal/dal/repositories/orderitem/rest"
	memoryrepo "github.com/pomanager/po-admin/internal/dal/repositories/outbox/memory"
	cacherepo "github.com/pomanager/po-admin/internal/dal/repositories/provider/cache"
	providerrest "github.com/pomanager/po-admin/internal/dal/repositories/provider/rest"
	"github.com/pomanager/po-admin/internal/otel"
	httptransport "github.com/pomanager/po-admin/internal/transport/http"
	outboxworker "github.com/pomanager/po-admin/internal/worker/outbox"
)

// App represents the application.
type App struct {
	transport    *httptransport.HTTPTransport
	redisClient  *redisclient.Client
	rabbitClient *rabbitmq.Client
	worker       *outboxworker.Worker
	otel         *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	backendClient := backend.MustNewClient()

	orderRepo := orderrest.NewRestOrderRepository(backendClient)
	itemRepo := itemrest.NewRestOrderItemRepository(backendClient)

	var providerRepo iproviderrepo.IProviderRepository = providerrest.NewRestProviderRepository(backendClient)
	var redisClient *redisclient.Client
	if viper.GetBool("cache.enabled") {
		redisClient = redisclient.MustNewClient()
		ttl := viper.GetDuration("cache.provider_ttl")
		providerRepo = cacherepo.NewCachedProviderRepository(providerRepo, redisClient, ttl)
	}

	var auditRepo iauditrepo.IAuditRepository = auditrepo.NopAuditRepository{}
	var rabbitClient *rabbitmq.Client
	var worker *outboxworker.Worker
	if viper.GetBool("rabbitmq.audit.enabled") {
		rabbitClient = rabbitmq.MustNewClient()
		if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
			Name:    viper.GetString("rabbitmq.audit.queue"),
			Durable: true,
		}); err != nil {
			panic("Failed to declare audit queue: " + err.Error())
		}

		outboxRepo := memoryrepo.NewMemoryOutboxRepository(viper.GetInt("rabbitmq.outbox.capacity"))
		auditRepo = auditrepo.NewOutboxAuditRepository(outboxRepo)
		worker = outboxworker.NewWorker(outboxRepo, rabbitClient)
	}

	transport := httptransport.NewHTTPTransport(orderRepo, itemRepo, providerRepo, auditRepo)
	transport.RegisterRoutes()

	return &App{
		transport:    transport,
		redisClient:  redisClient,
		rabbitClient: rabbitClient,
		worker:       worker,
		otel:         otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	if a.worker != nil {
		go a.worker.Start(workerCtx)
	}

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			slog.Error("Redis connection close error", "error", err)
		} else {
			slog.Info("Redis connection closed gracefully")
		}
	}

	if err := a.otel.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
