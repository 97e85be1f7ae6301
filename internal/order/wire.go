package order

import (
	"database/sql"

	"go.uber.org/zap"

	"denethor/internal/config"
	"denethor/internal/order/client"
	"denethor/internal/order/controller"
	"denethor/internal/order/repository"
	"denethor/internal/order/service"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := repository.NewMySQLOrderRepository(db)

	inventoryClient := client.NewInventoryClient(
		cfg.Clients.ProductServiceURL,
		cfg.Clients.Timeout,
		logger,
	)

	paymentClient := client.NewPaymentClient(
		cfg.Clients.PaymentServiceURL,
		cfg.Clients.Timeout,
		cfg.Breaker,
		logger,
	)

	orderSvc := service.NewOrderService(orderRepo, inventoryClient, paymentClient, logger)

	return controller.NewOrderController(orderSvc, logger)
}
