package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront-app/config"
	"storefront-app/internal/purchase"
)

// VerifyClient confirms with the order service that a gateway-reported
// capture corresponds to a finalized order. Implements purchase.Verifier.
type VerifyClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewVerifyClient(cfg *config.Commerce) *VerifyClient {
	return &VerifyClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
		baseURL: cfg.VerifyServiceURL,
	}
}

type verifyPayload struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	OrderType     string `json:"order_type"`
}

type verifyResult struct {
	IsSuccessfulOrder     bool `json:"is_successful_order"`
	UsedCredit            bool `json:"used_credit"`
	BundledSessionBooking bool `json:"bundled_session_booking"`
}

func (c *VerifyClient) Verify(ctx context.Context, req purchase.VerifyRequest) (*purchase.VerificationResult, error) {
	body, err := json.Marshal(verifyPayload{
		OrderID:       req.OrderID,
		TransactionID: req.TransactionID,
		OrderType:     string(req.OrderType),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal verify payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/verify", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var svcErr serviceError
		_ = json.NewDecoder(resp.Body).Decode(&svcErr)
		return nil, fmt.Errorf("verify service returned %d: %s", resp.StatusCode, svcErr.Message)
	}

	var res verifyResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}

	return &purchase.VerificationResult{
		IsSuccessfulOrder:     res.IsSuccessfulOrder,
		UsedCredit:            res.UsedCredit,
		BundledSessionBooking: res.BundledSessionBooking,
	}, nil
}
