package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	gatewayserver "github.com/thegunfirm/Mag-Lock-sub017/go"

	distributorclient "github.com/thegunfirm/Mag-Lock-sub017/internal/clients/http/distributor"
	imagesobs "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/adapters/observability"
	imagess3 "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/adapters/storage/s3"
	imagesapp "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/application"
	imagesports "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/ports"
	ordersredis "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/cache/redis"
	ordersdistributor "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/external/distributor"
	ordersmemory "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/memory"
	ordersobs "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application"
	ordersports "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
	platformobservability "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/observability"
	platformpostgres "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/postgres"
	platformtemporal "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/temporal"
)

// ServiceName identifies the gateway in telemetry and the info endpoint.
const ServiceName = "order-gateway"

const shutdownGrace = 30 * time.Second

// Run boots the order gateway HTTP API and blocks until ctx is cancelled or
// the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ObservabilityOptions(ServiceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderService, cleanupOrders, err := BuildOrderService(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanupOrders()

	var submissionWorkflows ordersports.SubmissionWorkflows = ordersworkflows.NewInlineSubmissionWorkflows(orderService)
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Disabled:  cfg.Temporal.Disabled,
	}, instruments, "temporal-client")
	if err != nil {
		logger.Warn("Temporal workflows unavailable, durable submissions run inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		submissionWorkflows = ordersworkflows.NewTemporalSubmissionWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}

	resolver := imagesobs.New(
		buildImageResolver(ctx, cfg, logger),
		imagesobs.WithLogger(logger),
		imagesobs.WithTracer(instruments.Tracer("internal.images.application")),
		imagesobs.WithMeter(instruments.Meter("internal.images.application")),
	)

	handlers := gatewayserver.ApiHandleFunctions{
		InfoAPI:   gatewayserver.NewInfoAPI(ServiceName, cfg.SecretStatus),
		OrdersAPI: gatewayserver.NewOrdersAPI(orderService, submissionWorkflows),
		ImagesAPI: gatewayserver.NewImagesAPI(resolver),
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), otelgin.Middleware(ServiceName))
	router := gatewayserver.NewRouterWithGinEngine(engine, handlers)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("order gateway listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			logger.Error("order gateway exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down order gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("order gateway forced to shutdown: %w", err)
	}
	return nil
}

// BuildOrderService wires the distributor client, journal, and builder into
// the decorated orders service. The worker shares this wiring.
func BuildOrderService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (ordersports.Service, func(), error) {
	logger := instruments.Logger
	client, err := distributorclient.NewClient(distributorclient.Config{
		OrderURL: cfg.Distributor.OrderURL,
		APIKey:   cfg.Distributor.APIKey,
		Timeout:  cfg.Distributor.Timeout,
	}, nil)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to configure distributor client: %w", err)
	}
	if !client.Configured() {
		logger.Warn("TGF_API_KEY not set, order submissions will fail until configured")
	}

	journal, idempotency, cleanup := buildStores(ctx, cfg, logger)
	builder := ordersapp.NewBuilder(ordersapp.BuilderDefaults{
		StoreName:   cfg.Orders.StoreName,
		FFLFallback: cfg.Orders.FFLFallback,
		AccountID:   cfg.Orders.AccountID,
	})
	core := ordersapp.NewService(builder, ordersdistributor.NewSubmitter(client),
		ordersapp.WithJournal(journal),
		ordersapp.WithIdempotencyStore(idempotency),
		ordersapp.WithLogger(logger),
	)
	service := ordersobs.New(core,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return service, cleanup, nil
}

// buildStores falls back to memory for both the journal and idempotency keys
// when no database is reachable. Redis, when configured, takes over the
// idempotency keys so several gateways share them.
func buildStores(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Journal, ordersports.IdempotencyStore, func()) {
	db, cleanup := platformpostgres.ConnectAndMigrate(ctx, cfg.PostgresDSN, logger)
	var (
		journal     ordersports.Journal          = ordersmemory.NewJournal()
		idempotency ordersports.IdempotencyStore = ordersmemory.NewIdempotencyStore()
	)
	if db != nil {
		logger.Info("submission journal and idempotency keys configured with postgres")
		journal = orderspostgres.NewJournal(db)
		idempotency = orderspostgres.NewIdempotencyStore(db)
	}
	if cfg.Redis.Addr == "" {
		return journal, idempotency, cleanup
	}
	store, err := ordersredis.NewIdempotencyStore(ctx, ordersredis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.IdempotencyTTL,
	})
	if err != nil {
		logger.Warn("redis unavailable, idempotency keys stay local", slog.String("error", err.Error()))
		return journal, idempotency, cleanup
	}
	logger.Info("idempotency keys configured with redis", slog.String("redis.addr", cfg.Redis.Addr))
	return journal, store, func() {
		_ = store.Close()
		cleanup()
	}
}

// buildImageResolver only builds a storage client when the feature is on, so
// storage credentials are not needed otherwise.
func buildImageResolver(ctx context.Context, cfg Config, logger *slog.Logger) imagesports.Resolver {
	resolverCfg := imagesapp.Config{
		Enabled:      cfg.Images.UseBucket,
		BaseURL:      cfg.Images.BaseURL,
		ProbeTimeout: cfg.Images.ProbeTimeout,
	}
	if !cfg.Images.UseBucket {
		return imagesapp.NewResolver(resolverCfg, nil)
	}
	if cfg.Storage.Bucket == "" {
		logger.Warn("USE_BUCKET_IMAGES set without S3_BUCKET, serving original image references")
		return imagesapp.NewResolver(resolverCfg, nil)
	}
	prober, err := imagess3.NewProber(ctx, imagess3.Config{
		Bucket:       cfg.Storage.Bucket,
		Region:       cfg.Storage.Region,
		Endpoint:     cfg.Storage.Endpoint,
		AccessKey:    cfg.Storage.AccessKeyID,
		SecretKey:    cfg.Storage.SecretAccessKey,
		UsePathStyle: cfg.Storage.UsePathStyle,
	})
	if err != nil {
		logger.Warn("failed to configure image bucket client, serving original image references", slog.String("error", err.Error()))
		return imagesapp.NewResolver(resolverCfg, nil)
	}
	logger.Info("image bucket resolution enabled", slog.String("bucket", cfg.Storage.Bucket))
	return imagesapp.NewResolver(resolverCfg, prober)
}
