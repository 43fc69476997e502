package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/webshoplab/orders/internal/config"
	"github.com/webshoplab/orders/internal/domain/repository"
)

// Per-service fx wiring. Each service opens the storage with its own schema
// and exposes only the repositories it works with.

var OrdersModule = fx.Options(
	fx.Provide(newStorage(OrdersSchema)),
	fx.Provide(
		func(s *Storage) repository.OrderRepository { return s.Orders() },
	),
	fx.Invoke(registerLifecycle),
)

var CustomersModule = fx.Options(
	fx.Provide(newStorage(CustomersSchema)),
	fx.Provide(
		func(s *Storage) repository.CustomerRepository { return s.Customers() },
		func(s *Storage) repository.IncrementRepository { return s.CustomerCredit() },
	),
	fx.Invoke(registerLifecycle),
)

var ProductsModule = fx.Options(
	fx.Provide(newStorage(ProductsSchema)),
	fx.Provide(
		func(s *Storage) repository.ProductRepository { return s.Products() },
		func(s *Storage) repository.IncrementRepository { return s.ProductQuantity() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(schema Schema) func(storageParams) (*Storage, error) {
	return func(p storageParams) (*Storage, error) {
		return New(p.Ctx, p.Config.DatabaseURI, schema, p.Logger)
	}
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
