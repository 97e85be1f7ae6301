package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"denethor/internal/domain"
	"denethor/internal/dto"
	apperrors "denethor/internal/errors"
)

// Mock implementations

type mockOrderRepository struct {
	SaveFunc         func(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id uint, status string) error

	saveCalls         int
	updateStatusCalls int
	lastStatus        string
}

func (m *mockOrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	m.saveCalls++
	return m.SaveFunc(ctx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	m.updateStatusCalls++
	m.lastStatus = status
	return m.UpdateStatusFunc(ctx, id, status)
}

type mockInventoryClient struct {
	ReduceQuantityFunc func(ctx context.Context, productID int64, quantity int64) error
	GetProductFunc     func(ctx context.Context, productID int64) (*dto.ProductDetails, error)

	reduceQuantityCalls int
}

func (m *mockInventoryClient) ReduceQuantity(ctx context.Context, productID int64, quantity int64) error {
	m.reduceQuantityCalls++
	return m.ReduceQuantityFunc(ctx, productID, quantity)
}

func (m *mockInventoryClient) GetProduct(ctx context.Context, productID int64) (*dto.ProductDetails, error) {
	return m.GetProductFunc(ctx, productID)
}

type mockPaymentClient struct {
	SubmitPaymentFunc       func(ctx context.Context, request *dto.PaymentRequest) (int64, error)
	GetPaymentByOrderIDFunc func(ctx context.Context, orderID uint) (*dto.PaymentDetails, error)

	submitCalls int
	lastRequest *dto.PaymentRequest
}

func (m *mockPaymentClient) SubmitPayment(ctx context.Context, request *dto.PaymentRequest) (int64, error) {
	m.submitCalls++
	m.lastRequest = request
	return m.SubmitPaymentFunc(ctx, request)
}

func (m *mockPaymentClient) GetPaymentByOrderID(ctx context.Context, orderID uint) (*dto.PaymentDetails, error) {
	return m.GetPaymentByOrderIDFunc(ctx, orderID)
}

func newTestOrderService(repo *mockOrderRepository, inventory *mockInventoryClient, payment *mockPaymentClient) *OrderService {
	return NewOrderService(repo, inventory, payment, zap.NewNop())
}

func placeOrderRequest() *dto.OrderRequest {
	return &dto.OrderRequest{
		ProductID:   42,
		Quantity:    2,
		TotalAmount: 500,
		PaymentMode: dto.PaymentModeCard,
	}
}

// Placement tests

func TestPlaceOrder_Success(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		SaveFunc: func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
			if order.Status != domain.OrderStatusCreated {
				t.Errorf("expected order saved with status CREATED, got %s", order.Status)
			}
			saved := *order
			saved.ID = 7
			return &saved, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, status string) error {
			return nil
		},
	}
	inventory := &mockInventoryClient{
		ReduceQuantityFunc: func(ctx context.Context, productID int64, quantity int64) error {
			return nil
		},
	}
	payment := &mockPaymentClient{
		SubmitPaymentFunc: func(ctx context.Context, request *dto.PaymentRequest) (int64, error) {
			return 101, nil
		},
	}

	svc := newTestOrderService(repo, inventory, payment)

	orderID, err := svc.PlaceOrder(ctx, placeOrderRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if orderID != 7 {
		t.Errorf("expected order id 7, got %d", orderID)
	}

	if repo.lastStatus != domain.OrderStatusPlaced {
		t.Errorf("expected final status PLACED, got %s", repo.lastStatus)
	}

	if inventory.reduceQuantityCalls != 1 {
		t.Errorf("expected exactly one inventory decrement, got %d", inventory.reduceQuantityCalls)
	}

	if repo.saveCalls != 1 || repo.updateStatusCalls != 1 {
		t.Errorf("expected one save and one status update, got %d and %d", repo.saveCalls, repo.updateStatusCalls)
	}

	if payment.submitCalls != 1 {
		t.Errorf("expected exactly one payment submission, got %d", payment.submitCalls)
	}
}

func TestPlaceOrder_BuildsPaymentRequest(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		SaveFunc: func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
			saved := *order
			saved.ID = 7
			return &saved, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, status string) error {
			return nil
		},
	}
	inventory := &mockInventoryClient{
		ReduceQuantityFunc: func(ctx context.Context, productID int64, quantity int64) error {
			return nil
		},
	}
	payment := &mockPaymentClient{
		SubmitPaymentFunc: func(ctx context.Context, request *dto.PaymentRequest) (int64, error) {
			return 101, nil
		},
	}

	svc := newTestOrderService(repo, inventory, payment)

	_, err := svc.PlaceOrder(ctx, placeOrderRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := payment.lastRequest
	if req == nil {
		t.Fatal("expected a payment request to be submitted")
	}

	if req.OrderID != 7 {
		t.Errorf("expected payment request for order 7, got %d", req.OrderID)
	}
	if req.Amount != 500 {
		t.Errorf("expected payment amount 500, got %d", req.Amount)
	}
	if req.PaymentMode != dto.PaymentModeCard {
		t.Errorf("expected payment mode CARD, got %s", req.PaymentMode)
	}
	if req.ReferenceNumber == "" {
		t.Error("expected a generated reference number")
	}
}

func TestPlaceOrder_InsufficientQuantity_NoOrderCreated(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{}
	inventory := &mockInventoryClient{
		ReduceQuantityFunc: func(ctx context.Context, productID int64, quantity int64) error {
			return apperrors.NewInsufficientQuantityError("product does not have sufficient quantity")
		},
	}
	payment := &mockPaymentClient{}

	svc := newTestOrderService(repo, inventory, payment)

	_, err := svc.PlaceOrder(ctx, placeOrderRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if _, ok := apperrors.IsInsufficientQuantityError(err); !ok {
		t.Errorf("expected InsufficientQuantityError, got %T", err)
	}

	if repo.saveCalls != 0 {
		t.Errorf("expected zero store writes, got %d", repo.saveCalls)
	}

	if payment.submitCalls != 0 {
		t.Errorf("expected zero payment submissions, got %d", payment.submitCalls)
	}
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{}
	inventory := &mockInventoryClient{
		ReduceQuantityFunc: func(ctx context.Context, productID int64, quantity int64) error {
			return apperrors.NewNotFoundError("product with id 42 not found")
		},
	}
	payment := &mockPaymentClient{}

	svc := newTestOrderService(repo, inventory, payment)

	_, err := svc.PlaceOrder(ctx, placeOrderRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}

	if repo.saveCalls != 0 {
		t.Errorf("expected zero store writes, got %d", repo.saveCalls)
	}
}

func TestPlaceOrder_PaymentFailure_AbsorbedIntoStatus(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		SaveFunc: func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
			saved := *order
			saved.ID = 9
			return &saved, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, status string) error {
			return nil
		},
	}
	inventory := &mockInventoryClient{
		ReduceQuantityFunc: func(ctx context.Context, productID int64, quantity int64) error {
			return nil
		},
	}
	payment := &mockPaymentClient{
		SubmitPaymentFunc: func(ctx context.Context, request *dto.PaymentRequest) (int64, error) {
			return 0, apperrors.NewTransportError("payment service returned status 500", nil)
		},
	}

	svc := newTestOrderService(repo, inventory, payment)

	orderID, err := svc.PlaceOrder(ctx, placeOrderRequest())
	if err != nil {
		t.Fatalf("expected no error despite payment failure, got %v", err)
	}

	if orderID != 9 {
		t.Errorf("expected order id 9, got %d", orderID)
	}

	if repo.lastStatus != domain.OrderStatusPaymentFailed {
		t.Errorf("expected final status PAYMENT_FAILED, got %s", repo.lastStatus)
	}
}

func TestPlaceOrder_SaveFailure(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		SaveFunc: func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
			return nil, apperrors.NewInternalError("insert failed", nil)
		},
	}
	inventory := &mockInventoryClient{
		ReduceQuantityFunc: func(ctx context.Context, productID int64, quantity int64) error {
			return nil
		},
	}
	payment := &mockPaymentClient{}

	svc := newTestOrderService(repo, inventory, payment)

	_, err := svc.PlaceOrder(ctx, placeOrderRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if payment.submitCalls != 0 {
		t.Errorf("expected no payment submission after save failure, got %d", payment.submitCalls)
	}
}

// Read/aggregation tests

func storedOrder() *domain.Order {
	return &domain.Order{
		ID:        7,
		ProductID: 42,
		Quantity:  2,
		Amount:    500,
		Status:    domain.OrderStatusPlaced,
		OrderDate: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetOrderDetails_Success(t *testing.T) {
	ctx := context.Background()

	product := &dto.ProductDetails{ProductID: 42, ProductName: "Palantir", Price: 250, Quantity: 10}
	paymentDetails := &dto.PaymentDetails{
		PaymentID:   101,
		Status:      "SUCCESS",
		PaymentMode: dto.PaymentModeCard,
		Amount:      500,
		PaymentDate: time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC),
		OrderID:     7,
	}

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return storedOrder(), nil
		},
	}
	inventory := &mockInventoryClient{
		GetProductFunc: func(ctx context.Context, productID int64) (*dto.ProductDetails, error) {
			return product, nil
		},
	}
	payment := &mockPaymentClient{
		GetPaymentByOrderIDFunc: func(ctx context.Context, orderID uint) (*dto.PaymentDetails, error) {
			return paymentDetails, nil
		},
	}

	svc := newTestOrderService(repo, inventory, payment)

	details, err := svc.GetOrderDetails(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if details.OrderID != 7 || details.OrderStatus != domain.OrderStatusPlaced || details.Amount != 500 {
		t.Errorf("order fields not carried verbatim: %+v", details)
	}
	if details.ProductDetails != product {
		t.Error("product details not carried verbatim")
	}
	if details.PaymentDetails != paymentDetails {
		t.Error("payment details not carried verbatim")
	}
}

func TestGetOrderDetails_OrderNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order with id 999 not found")
		},
	}
	inventory := &mockInventoryClient{}
	payment := &mockPaymentClient{}

	svc := newTestOrderService(repo, inventory, payment)

	_, err := svc.GetOrderDetails(ctx, 999)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestGetOrderDetails_ProductNotFound_FailsRead(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return storedOrder(), nil
		},
	}
	inventory := &mockInventoryClient{
		GetProductFunc: func(ctx context.Context, productID int64) (*dto.ProductDetails, error) {
			return nil, apperrors.NewNotFoundError("product with id 42 not found")
		},
	}
	payment := &mockPaymentClient{
		GetPaymentByOrderIDFunc: func(ctx context.Context, orderID uint) (*dto.PaymentDetails, error) {
			return &dto.PaymentDetails{OrderID: orderID, Status: "SUCCESS"}, nil
		},
	}

	svc := newTestOrderService(repo, inventory, payment)

	_, err := svc.GetOrderDetails(ctx, 7)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestGetOrderDetails_PaymentDetailsNotFound_FailsRead(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return storedOrder(), nil
		},
	}
	inventory := &mockInventoryClient{
		GetProductFunc: func(ctx context.Context, productID int64) (*dto.ProductDetails, error) {
			return &dto.ProductDetails{ProductID: productID}, nil
		},
	}
	payment := &mockPaymentClient{
		GetPaymentByOrderIDFunc: func(ctx context.Context, orderID uint) (*dto.PaymentDetails, error) {
			return nil, apperrors.NewNotFoundError("payment details for order 7 not found")
		},
	}

	svc := newTestOrderService(repo, inventory, payment)

	_, err := svc.GetOrderDetails(ctx, 7)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestGetOrderDetails_DegradedPayment_StillSucceeds(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return storedOrder(), nil
		},
	}
	inventory := &mockInventoryClient{
		GetProductFunc: func(ctx context.Context, productID int64) (*dto.ProductDetails, error) {
			return &dto.ProductDetails{ProductID: productID}, nil
		},
	}
	payment := &mockPaymentClient{
		GetPaymentByOrderIDFunc: func(ctx context.Context, orderID uint) (*dto.PaymentDetails, error) {
			// The client degrades internally; the orchestrator sees a
			// placeholder, never an error.
			return &dto.PaymentDetails{
				Status:      dto.PaymentStatusUnavailable,
				PaymentDate: time.Now().UTC(),
				OrderID:     orderID,
			}, nil
		},
	}

	svc := newTestOrderService(repo, inventory, payment)

	details, err := svc.GetOrderDetails(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if details.PaymentDetails.Status != dto.PaymentStatusUnavailable {
		t.Errorf("expected placeholder payment status, got %s", details.PaymentDetails.Status)
	}
	if details.PaymentDetails.OrderID != 7 {
		t.Errorf("expected placeholder to carry order id 7, got %d", details.PaymentDetails.OrderID)
	}
}

func TestGetOrderDetails_FetchesConcurrently(t *testing.T) {
	ctx := context.Background()
	delay := 100 * time.Millisecond

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return storedOrder(), nil
		},
	}
	inventory := &mockInventoryClient{
		GetProductFunc: func(ctx context.Context, productID int64) (*dto.ProductDetails, error) {
			time.Sleep(delay)
			return &dto.ProductDetails{ProductID: productID}, nil
		},
	}
	payment := &mockPaymentClient{
		GetPaymentByOrderIDFunc: func(ctx context.Context, orderID uint) (*dto.PaymentDetails, error) {
			time.Sleep(delay)
			return &dto.PaymentDetails{OrderID: orderID, Status: "SUCCESS"}, nil
		},
	}

	svc := newTestOrderService(repo, inventory, payment)

	start := time.Now()
	_, err := svc.GetOrderDetails(ctx, 7)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sequential fetches would take at least 2*delay.
	if elapsed >= 2*delay {
		t.Errorf("fetches appear sequential: elapsed %v with per-call delay %v", elapsed, delay)
	}
}
