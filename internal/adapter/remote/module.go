package remote

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/webshoplab/orders/internal/config"
)

// Module exposes the remote service clients to the fx graph.
var Module = fx.Provide(newCustomerClient, newProductClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newCustomerClient(p clientParams) (*CustomerClient, error) {
	return NewCustomerClient(p.Config.CustomerServiceAddress, p.Logger)
}

func newProductClient(p clientParams) (*ProductClient, error) {
	return NewProductClient(p.Config.ProductServiceAddress, p.Logger)
}
