package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"denethor/internal/dto"
	"denethor/internal/errors"
)

// InventoryClient calls the product-catalog service. Downstream response
// codes are translated at this boundary: 400 means insufficient quantity,
// 404 means the product does not exist, anything else is a transport
// failure.
type InventoryClient struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewInventoryClient(baseURL string, timeout time.Duration, logger *zap.Logger) *InventoryClient {
	return &InventoryClient{
		http:   resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		logger: logger,
	}
}

func (c *InventoryClient) ReduceQuantity(ctx context.Context, productID int64, quantity int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("productId", strconv.FormatInt(productID, 10)).
		SetQueryParam("quantity", strconv.FormatInt(quantity, 10)).
		Put("/product/reduceQuantity/{productId}")
	if err != nil {
		return errors.NewTransportError("calling product catalog", err)
	}

	switch {
	case resp.StatusCode() == http.StatusBadRequest:
		return errors.NewInsufficientQuantityError("product does not have sufficient quantity")
	case resp.StatusCode() == http.StatusNotFound:
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	case resp.IsError():
		return errors.NewTransportError(fmt.Sprintf("product catalog returned status %d", resp.StatusCode()), nil)
	}

	c.logger.Debug("reduced product quantity",
		zap.Int64("productId", productID), zap.Int64("quantity", quantity))
	return nil
}

func (c *InventoryClient) GetProduct(ctx context.Context, productID int64) (*dto.ProductDetails, error) {
	var details dto.ProductDetails

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("productId", strconv.FormatInt(productID, 10)).
		SetResult(&details).
		Get("/product/{productId}")
	if err != nil {
		return nil, errors.NewTransportError("calling product catalog", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	case resp.IsError():
		return nil, errors.NewTransportError(fmt.Sprintf("product catalog returned status %d", resp.StatusCode()), nil)
	}

	return &details, nil
}
