// api/payment/facilitator_client.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
)

// Facilitator verifies and settles payments on behalf of the server
type Facilitator interface {
	Verify(ctx context.Context, payload *Payload, requirements *Requirements) (*VerifyResponse, error)
	Settle(ctx context.Context, payload *Payload, requirements *Requirements) (*SettleResponse, error)
}

type facilitatorRequest struct {
	X402Version         int           `json:"x402Version"`
	PaymentPayload      *Payload      `json:"paymentPayload"`
	PaymentRequirements *Requirements `json:"paymentRequirements"`
}

// HTTPFacilitatorClient talks to a remote facilitator over HTTP
type HTTPFacilitatorClient struct {
	url        string
	httpClient *http.Client
}

func NewHTTPFacilitatorClient(url string, timeout time.Duration) *HTTPFacilitatorClient {
	return &HTTPFacilitatorClient{
		url:        strings.TrimRight(url, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPFacilitatorClient) Verify(ctx context.Context, payload *Payload, requirements *Requirements) (*VerifyResponse, error) {
	var resp VerifyResponse
	status, err := c.post(ctx, "/verify", payload, requirements, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && resp.InvalidReason == "" {
		return nil, fmt.Errorf("%w: verify returned %d", echo_errors.ErrFacilitator, status)
	}
	return &resp, nil
}

func (c *HTTPFacilitatorClient) Settle(ctx context.Context, payload *Payload, requirements *Requirements) (*SettleResponse, error) {
	var resp SettleResponse
	status, err := c.post(ctx, "/settle", payload, requirements, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !resp.Success {
		return nil, fmt.Errorf("%w: settle returned %d: %s", echo_errors.ErrPaymentSettlement, status, resp.ErrorReason)
	}
	return &resp, nil
}

func (c *HTTPFacilitatorClient) post(ctx context.Context, path string, payload *Payload, requirements *Requirements, out interface{}) (int, error) {
	body, err := json.Marshal(facilitatorRequest{
		X402Version:         Version,
		PaymentPayload:      payload,
		PaymentRequirements: requirements,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s request failed: %v", echo_errors.ErrFacilitator, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read %s response: %v", echo_errors.ErrFacilitator, path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return 0, fmt.Errorf("%w: %s returned %d: %s", echo_errors.ErrFacilitator, path, resp.StatusCode, string(raw))
	}
	return resp.StatusCode, nil
}
