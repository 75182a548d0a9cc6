package bank

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures: the acquirer could not be
// reached or returned a malformed response. Distinct from a business decline.
var ErrUnavailable = errors.New("authorization service unavailable")

// ServiceError means the acquirer answered but could not authorize the
// request at all (an error body, or a decision without an authorization
// code). It is never mapped to a Declined outcome.
type ServiceError struct {
	Detail string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("authorization service error: %s", e.Detail)
}

// AuthorizationRequest is the normalized payload the acquirer expects.
type AuthorizationRequest struct {
	CardNumber string
	ExpiryDate string // MM/YYYY
	Currency   string
	Amount     int64
	CVV        string
}

// Decision is the acquirer's verdict. An empty AuthorizationCode signals the
// service failed to process the request; callers must treat it as a failure,
// not a decline.
type Decision struct {
	Authorized        bool
	AuthorizationCode string
}

type Authorizer interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (*Decision, error)
}
