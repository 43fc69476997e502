package di

import (
	"go.uber.org/fx"

	"github.com/webshoplab/orders/internal/adapter/remote"
	"github.com/webshoplab/orders/internal/app"
	"github.com/webshoplab/orders/internal/config"
	"github.com/webshoplab/orders/internal/logger"
	"github.com/webshoplab/orders/internal/server/http/router"
	"github.com/webshoplab/orders/internal/storage/postgres"
	"github.com/webshoplab/orders/internal/usecase"
)

// Orders assembles the order service dependency graph.
func Orders(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.OrdersModule,
		remote.Module,
		usecase.OrdersModule,
		fx.Provide(
			func(client *remote.CustomerClient) app.CreditGateway { return client },
			func(client *remote.ProductClient) app.StockGateway { return client },
		),
		router.OrdersModule,
		app.OrdersModule,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// Customers assembles the customer service dependency graph.
func Customers(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.CustomersModule,
		usecase.CustomersModule,
		router.CustomersModule,
		app.CustomersModule,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// Products assembles the product service dependency graph.
func Products(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.ProductsModule,
		usecase.ProductsModule,
		router.ProductsModule,
		app.ProductsModule,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
