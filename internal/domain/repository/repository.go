package repository

import (
	"context"
	"errors"

	"github.com/cardstream/payment-gateway/internal/domain/payment"
)

var ErrNotFound = errors.New("not found")

// PaymentRepository stores terminal payment outcomes keyed by identifier.
// Last write for an identifier wins; implementations must be safe for
// concurrent use.
type PaymentRepository interface {
	Save(ctx context.Context, p *payment.Payment) error
	Find(ctx context.Context, id string) (*payment.Payment, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
