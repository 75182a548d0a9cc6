package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cardstream/payment-gateway/internal/domain/bank"
)

// Client speaks the acquirer simulator's JSON contract. It performs a single
// synchronous call per authorization; retries, timeouts beyond the underlying
// http.Client's, and circuit breaking belong to layers above.
type Client struct {
	endpoint string
	httpc    *http.Client
}

func NewClient(endpoint string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		endpoint: endpoint,
		httpc:    httpc,
	}
}

type authorizationPayload struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

type authorizationReply struct {
	Authorized        *bool  `json:"authorized"`
	AuthorizationCode string `json:"authorization_code"`
	Error             string `json:"error"`
}

func (c *Client) Authorize(ctx context.Context, req bank.AuthorizationRequest) (*bank.Decision, error) {
	body, err := json.Marshal(authorizationPayload{
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		Currency:   req.Currency,
		Amount:     req.Amount,
		CVV:        req.CVV,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding authorization request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building authorization request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bank.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var reply authorizationReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", bank.ErrUnavailable, err)
	}

	// A reply without the authorized flag is the simulator's way of saying
	// it could not process the request; the error field carries the detail.
	if reply.Authorized == nil {
		detail := reply.Error
		if detail == "" {
			detail = fmt.Sprintf("unexpected response (status %d)", resp.StatusCode)
		}
		return nil, &bank.ServiceError{Detail: detail}
	}

	return &bank.Decision{
		Authorized:        *reply.Authorized,
		AuthorizationCode: reply.AuthorizationCode,
	}, nil
}
