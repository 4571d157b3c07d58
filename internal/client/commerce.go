package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront-app/config"
	"storefront-app/internal/purchase"
)

// CommerceClient talks to the commerce order service. It implements
// purchase.OrderService.
type CommerceClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewCommerceClient(cfg *config.Commerce) *CommerceClient {
	return &CommerceClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
		baseURL: cfg.OrderServiceURL,
	}
}

type createOrderPayload struct {
	ProductID  string  `json:"product_id"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	CouponCode string  `json:"coupon_code,omitempty"`
	BuyerID    uint    `json:"buyer_id"`
}

type createOrderResult struct {
	OrderID         string `json:"order_id"`
	OrderType       string `json:"order_type"`
	PaymentRequired bool   `json:"payment_required"`
}

type serviceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *CommerceClient) CreateOrder(ctx context.Context, req purchase.CreateOrderRequest) (*purchase.Order, error) {
	body, err := json.Marshal(createOrderPayload{
		ProductID:  req.ProductID,
		Price:      req.Price,
		Currency:   req.Currency,
		CouponCode: req.CouponCode,
		BuyerID:    req.BuyerID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal create order payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var svcErr serviceError
		_ = json.NewDecoder(resp.Body).Decode(&svcErr)
		return nil, orderCreationError(resp.StatusCode, svcErr)
	}

	var res createOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode create order response: %w", err)
	}

	return &purchase.Order{
		OrderID:         res.OrderID,
		OrderType:       purchase.ProductType(res.OrderType),
		PaymentRequired: res.PaymentRequired,
	}, nil
}

// orderCreationError maps the service's structured error codes onto the flow
// taxonomy. Older deployments of the order service only send a message, so
// the known message strings are matched as a fallback until every deployment
// sends codes.
func orderCreationError(status int, svcErr serviceError) error {
	cause := fmt.Errorf("order service returned %d: %s", status, svcErr.Message)

	switch svcErr.Code {
	case "already_purchased":
		return purchase.Fail(purchase.ReasonAlreadyPurchased, cause)
	case "discount_invalid":
		return purchase.Fail(purchase.ReasonDiscountInvalid, cause)
	}

	msg := strings.ToLower(svcErr.Message)
	switch {
	case strings.Contains(msg, "already has a confirmed order"):
		return purchase.Fail(purchase.ReasonAlreadyPurchased, cause)
	case strings.Contains(msg, "unable to apply discount to order"):
		return purchase.Fail(purchase.ReasonDiscountInvalid, cause)
	}

	return purchase.Fail(purchase.ReasonOrderCreation, cause)
}
