package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/queue"
	orderRepository "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/order"
	productRepository "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/product"
	userRepository "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/user"
	restAdapter "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rest"
	orderRPC "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc/order"
	productRPC "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc/product"
	userRPC "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc/user"
	graphqlAdapter "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/graphql"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/gateway"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/services/audit"
	orderService "github.com/ZaninaAhlem/ExamMicroservices/internal/services/order"
	productService "github.com/ZaninaAhlem/ExamMicroservices/internal/services/product"
	userService "github.com/ZaninaAhlem/ExamMicroservices/internal/services/user"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/diagnostics"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

func main() {
	app := &cli.App{
		Name:  "gateway",
		Usage: "REST and GraphQL gateway over the order, product and user backends",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "gateway-port", Value: 3000, EnvVars: []string{"GATEWAY_PORT"}},
			&cli.IntFlag{Name: "order-port", Value: 50051, EnvVars: []string{"ORDER_PORT"}},
			&cli.IntFlag{Name: "product-port", Value: 50052, EnvVars: []string{"PRODUCT_PORT"}},
			&cli.IntFlag{Name: "user-port", Value: 50053, EnvVars: []string{"USER_PORT"}},
			&cli.IntFlag{Name: "diagnostics-port", Value: 9090, EnvVars: []string{"DIAGNOSTICS_PORT"}},
			&cli.StringFlag{
				Name:    "postgres-dsn",
				Usage:   "postgres connection string; empty keeps the in-memory stores",
				EnvVars: []string{"POSTGRES_DSN"},
			},
			&cli.StringFlag{
				Name:    "otlp-endpoint",
				Value:   "localhost:4317",
				EnvVars: []string{"OTLP_ENDPOINT"},
			},
			&cli.IntFlag{
				Name:    "fan-out-limit",
				Value:   userService.DefaultFanOutLimit,
				Usage:   "max concurrent order lookups per hydration batch",
				EnvVars: []string{"FAN_OUT_LIMIT"},
			},
			&cli.DurationFlag{
				Name:    "hydrate-timeout",
				Value:   userService.DefaultHydrateTimeout,
				EnvVars: []string{"HYDRATE_TIMEOUT"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	ctx := c.Context

	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(c.String("otlp-endpoint")),
		otlptracegrpc.WithReconnectionPeriod(5*time.Second),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return err
	}

	// Every tracer batches spans; flush them all when the gateway stops so
	// the tail of the trace is not dropped on exit.
	var tracers []tracing.Tracer
	newTracer := func(serviceName string) tracing.Tracer {
		tracer := tracing.NewTracer(serviceName, exporter)
		tracers = append(tracers, tracer)

		return tracer
	}
	defer func() {
		for _, tracer := range tracers {
			if err := tracer.Shutdown(); err != nil {
				log.Printf("tracer shutdown: %v", err)
			}
		}
	}()

	orderRepo, productRepo, userRepo, err := buildRepositories(ctx, c.String("postgres-dsn"))
	if err != nil {
		return err
	}

	queueClient := queue.NewInMemoryQueue()
	defer queueClient.Close()

	auditTracer := newTracer("audit-service")
	auditSvc := audit.NewService(auditTracer)
	go func() {
		if err := queueClient.Consume(audit.EntityChangedTopic,
			audit.NewEntityChangedHandler(auditSvc, auditTracer)); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	orderSvc := orderService.NewService(orderRepo, newTracer("order-service"), queueClient)
	productSvc := productService.NewService(productRepo, newTracer("product-service"), queueClient)

	orderServer := orderRPC.NewServer(orderSvc, newTracer("order-rpc"))
	productServer := productRPC.NewServer(productSvc, newTracer("product-rpc"))

	go func() {
		if err := orderServer.ListenAndServe(c.Int("order-port")); err != nil {
			log.Fatalf("order backend: %v", err)
		}
	}()
	go func() {
		if err := productServer.ListenAndServe(c.Int("product-port")); err != nil {
			log.Fatalf("product backend: %v", err)
		}
	}()

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// The user backend resolves order references through the order
	// backend's remote boundary, same as any other caller.
	userOrderClient := orderRPC.NewClient(&orderRPC.Config{
		Address:    fmt.Sprintf("http://localhost:%d", c.Int("order-port")),
		HTTPClient: httpClient,
		Tracer:     newTracer("user-order-client"),
	})

	userSvc := userService.NewService(
		userRepo,
		userOrderClient,
		newTracer("user-service"),
		queueClient,
		c.Int("fan-out-limit"),
		c.Duration("hydrate-timeout"),
	)
	userServer := userRPC.NewServer(userSvc, newTracer("user-rpc"))

	go func() {
		if err := userServer.ListenAndServe(c.Int("user-port")); err != nil {
			log.Fatalf("user backend: %v", err)
		}
	}()

	gw := gateway.New(
		orderRPC.NewClient(&orderRPC.Config{
			Address:    fmt.Sprintf("http://localhost:%d", c.Int("order-port")),
			HTTPClient: httpClient,
			Tracer:     newTracer("gateway-order-client"),
		}),
		productRPC.NewClient(&productRPC.Config{
			Address:    fmt.Sprintf("http://localhost:%d", c.Int("product-port")),
			HTTPClient: httpClient,
			Tracer:     newTracer("gateway-product-client"),
		}),
		userRPC.NewClient(&userRPC.Config{
			Address:    fmt.Sprintf("http://localhost:%d", c.Int("user-port")),
			HTTPClient: httpClient,
			Tracer:     newTracer("gateway-user-client"),
		}),
		newTracer("gateway"),
	)

	graphqlHandler, err := graphqlAdapter.NewHandler(gw)
	if err != nil {
		return err
	}

	diagnosticsServer := diagnostics.NewServer(c.Int("diagnostics-port"))
	go func() {
		if err := diagnosticsServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("diagnostics server: %v", err)
		}
	}()

	restServer := restAdapter.NewServer(gw, newTracer("gateway-rest"), graphqlHandler)

	log.Printf("gateway listening on :%d", c.Int("gateway-port"))

	return restServer.ListenAndServe(c.Int("gateway-port"))
}

func buildRepositories(ctx context.Context, dsn string) (
	orderRepository.Repository,
	productRepository.Repository,
	userRepository.Repository,
	error,
) {
	if dsn == "" {
		return orderRepository.NewRepository(),
			productRepository.NewRepository(),
			userRepository.NewRepository(),
			nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, nil, err
	}

	for _, ensure := range []func(context.Context, *pgxpool.Pool) error{
		orderRepository.EnsureSchema,
		productRepository.EnsureSchema,
		userRepository.EnsureSchema,
	} {
		if err := ensure(ctx, pool); err != nil {
			return nil, nil, nil, err
		}
	}

	return orderRepository.NewPostgresRepository(pool),
		productRepository.NewPostgresRepository(pool),
		userRepository.NewPostgresRepository(pool),
		nil
}
