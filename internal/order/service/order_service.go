package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"denethor/internal/domain"
	"denethor/internal/dto"
	"denethor/internal/errors"
)

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type InventoryClient interface {
	ReduceQuantity(ctx context.Context, productID int64, quantity int64) error
	GetProduct(ctx context.Context, productID int64) (*dto.ProductDetails, error)
}

type PaymentClient interface {
	SubmitPayment(ctx context.Context, request *dto.PaymentRequest) (int64, error)
	GetPaymentByOrderID(ctx context.Context, orderID uint) (*dto.PaymentDetails, error)
}

// OrderService coordinates order placement and retrieval across the
// order store, the product catalog and the payment service. All
// coordination logic lives here; the clients only translate errors.
type OrderService struct {
	orderRepo OrderRepository
	inventory InventoryClient
	payment   PaymentClient
	logger    *zap.Logger
}

func NewOrderService(
	orderRepo OrderRepository,
	inventory InventoryClient,
	payment PaymentClient,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		inventory: inventory,
		payment:   payment,
		logger:    logger,
	}
}

// PlaceOrder runs the placement saga: reserve inventory, persist the
// order, charge payment, finalize the status. There is no compensation:
// once inventory is decremented and the order persisted, a payment
// failure becomes the PAYMENT_FAILED status rather than an error.
// Duplicate submissions are not deduplicated.
func (s *OrderService) PlaceOrder(ctx context.Context, req *dto.OrderRequest) (uint, error) {
	s.logger.Info("placing order",
		zap.Int64("productId", req.ProductID),
		zap.Int64("quantity", req.Quantity),
		zap.Int64("totalAmount", req.TotalAmount),
		zap.String("paymentMode", string(req.PaymentMode)))

	if err := s.inventory.ReduceQuantity(ctx, req.ProductID, req.Quantity); err != nil {
		return 0, err
	}

	s.logger.Info("reduced quantity in product catalog", zap.Int64("productId", req.ProductID))

	order := &domain.Order{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Amount:    req.TotalAmount,
		Status:    domain.OrderStatusCreated,
		OrderDate: time.Now().UTC(),
	}

	order, err := s.orderRepo.Save(ctx, order)
	if err != nil {
		return 0, errors.NewInternalError("persisting order", err)
	}

	paymentRequest := &dto.PaymentRequest{
		OrderID:         order.ID,
		Amount:          req.TotalAmount,
		ReferenceNumber: uuid.New().String(),
		PaymentMode:     req.PaymentMode,
	}

	status := domain.OrderStatusPlaced
	if _, err := s.payment.SubmitPayment(ctx, paymentRequest); err != nil {
		s.logger.Error("payment failed, changing order status to PAYMENT_FAILED",
			zap.Uint("orderId", order.ID), zap.Error(err))
		status = domain.OrderStatusPaymentFailed
	} else {
		s.logger.Info("payment done successfully, changing order status to PLACED",
			zap.Uint("orderId", order.ID))
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return 0, errors.NewInternalError("updating order status", err)
	}

	s.logger.Info("order created successfully", zap.Uint("orderId", order.ID))
	return order.ID, nil
}

// GetOrderDetails loads the order and fans out to the product catalog
// and the payment service concurrently, joining both before assembling
// the view. The payment branch degrades to a placeholder inside the
// client; only an explicit not-found from either branch fails the read.
func (s *OrderService) GetOrderDetails(ctx context.Context, orderID uint) (*dto.OrderDetailsResponse, error) {
	s.logger.Info("getting order details", zap.Uint("orderId", orderID))

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var (
		product *dto.ProductDetails
		payment *dto.PaymentDetails
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.inventory.GetProduct(gctx, order.ProductID)
		if err != nil {
			return err
		}
		product = p
		return nil
	})

	g.Go(func() error {
		p, err := s.payment.GetPaymentByOrderID(gctx, order.ID)
		if err != nil {
			return err
		}
		payment = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.OrderDetailsResponse{
		OrderID:        order.ID,
		OrderDate:      order.OrderDate,
		OrderStatus:    order.Status,
		Amount:         order.Amount,
		ProductDetails: product,
		PaymentDetails: payment,
	}, nil
}
