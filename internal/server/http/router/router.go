package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/webshoplab/orders/internal/server/http/handlers"
	"github.com/webshoplab/orders/internal/server/http/middleware"
)

func newEngine(logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	return engine
}

// SetupOrders configures the order service router.
func SetupOrders(facade handlers.OrderFacade, logger *slog.Logger) *gin.Engine {
	engine := newEngine(logger)

	orderHandler := handlers.NewOrderHandler(facade)
	infoHandler := handlers.NewInfoHandler("orders")

	engine.GET("/info", infoHandler.Info)

	order := engine.Group("/order")
	order.POST("", orderHandler.Create)
	order.GET("", orderHandler.List)
	order.GET("/byid/:id", orderHandler.Get)
	order.DELETE("/byid/:id", orderHandler.Delete)

	return engine
}

// SetupCustomers configures the customer service router.
func SetupCustomers(facade handlers.CustomerFacade, logger *slog.Logger) *gin.Engine {
	engine := newEngine(logger)

	customerHandler := handlers.NewCustomerHandler(facade)
	infoHandler := handlers.NewInfoHandler("customers")

	engine.GET("/info", infoHandler.Info)

	customer := engine.Group("/customer")
	customer.POST("", customerHandler.Create)
	customer.GET("", customerHandler.List)
	customer.GET("/byid/:id", customerHandler.Get)
	customer.DELETE("/byid/:id", customerHandler.Delete)
	customer.POST("/credit/increment", customerHandler.IncrementCredit)
	customer.DELETE("/credit/increment", customerHandler.UndoIncrementCredit)

	return engine
}

// SetupProducts configures the product service router.
func SetupProducts(facade handlers.ProductFacade, logger *slog.Logger) *gin.Engine {
	engine := newEngine(logger)

	productHandler := handlers.NewProductHandler(facade)
	infoHandler := handlers.NewInfoHandler("products")

	engine.GET("/info", infoHandler.Info)

	product := engine.Group("/product")
	product.POST("", productHandler.Create)
	product.GET("", productHandler.List)
	product.GET("/byid/:id", productHandler.Get)
	product.DELETE("/byid/:id", productHandler.Delete)
	product.POST("/quantity/increment", productHandler.IncrementQuantity)
	product.DELETE("/quantity/increment", productHandler.UndoIncrementQuantity)

	return engine
}
