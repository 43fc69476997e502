package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/webshoplab/orders/internal/config"
	"github.com/webshoplab/orders/internal/domain/repository"
	"github.com/webshoplab/orders/internal/ledger"
	"github.com/webshoplab/orders/internal/server/http/handlers"
	"github.com/webshoplab/orders/internal/worker"
)

// Per-service application wiring. The order service runs the saga worker
// next to its HTTP server; the customer and product services run the
// idempotency ledger sweeper instead.

var OrdersModule = fx.Options(
	fx.Provide(
		NewFulfillmentFacade,
		func(f *FulfillmentFacade) handlers.OrderFacade { return f },
		newHTTPServer,
		newSagaWorker,
	),
	fx.Invoke(registerOrdersLifecycle),
)

var CustomersModule = fx.Options(
	fx.Provide(
		NewCustomerServiceFacade,
		func(f *CustomerServiceFacade) handlers.CustomerFacade { return f },
		newHTTPServer,
		newSweeper,
	),
	fx.Invoke(registerEntityLifecycle),
)

var ProductsModule = fx.Options(
	fx.Provide(
		NewProductServiceFacade,
		func(f *ProductServiceFacade) handlers.ProductFacade { return f },
		newHTTPServer,
		newSweeper,
	),
	fx.Invoke(registerEntityLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *FulfillmentFacade
	Config *config.Config
	Logger *slog.Logger
}

func newSagaWorker(p workerParams) *worker.SagaWorker {
	return worker.NewSagaWorker(
		p.Facade,
		p.Config.PollInterval,
		p.Config.ProcessingTimeout,
		p.Logger,
	)
}

type sweeperParams struct {
	fx.In

	Ledger repository.IncrementRepository
	Config *config.Config
	Logger *slog.Logger
}

func newSweeper(p sweeperParams) *ledger.Sweeper {
	return ledger.NewSweeper(
		p.Ledger,
		p.Config.LedgerSweepInterval,
		p.Config.LedgerRetention,
		p.Logger,
	)
}

// runner is a background component with the worker start/stop contract.
type runner interface {
	Start(ctx context.Context)
	Stop()
}

type ordersLifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.SagaWorker
	Config     *config.Config
}

func registerOrdersLifecycle(p ordersLifecycleParams) {
	registerLifecycle(p.Lifecycle, p.Shutdowner, p.Logger, p.Server, p.Worker, p.Config)
}

type entityLifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *ledger.Sweeper
	Config     *config.Config
}

func registerEntityLifecycle(p entityLifecycleParams) {
	registerLifecycle(p.Lifecycle, p.Shutdowner, p.Logger, p.Server, p.Sweeper, p.Config)
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, logger *slog.Logger, server *http.Server, background runner, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting service", slog.String("addr", server.Addr))
			background.Start(ctx)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			background.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, cfg.ShutdownTimeout)
			}
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("service stopped")
			return nil
		},
	})
}
