package router

import "go.uber.org/fx"

// Per-service router wiring.
var (
	OrdersModule    = fx.Provide(SetupOrders)
	CustomersModule = fx.Provide(SetupCustomers)
	ProductsModule  = fx.Provide(SetupProducts)
)
