package usecase

import "go.uber.org/fx"

// Per-service use case wiring.
var (
	OrdersModule    = fx.Provide(NewOrderUseCase)
	CustomersModule = fx.Provide(NewCustomerUseCase, NewIncrementUseCase)
	ProductsModule  = fx.Provide(NewProductUseCase, NewIncrementUseCase)
)
