package paymentdetails

import (
	"context"

	"github.com/cardstream/payment-gateway/internal/domain/payment"
	"github.com/cardstream/payment-gateway/internal/domain/repository"
)

type UseCase struct {
	payments repository.PaymentRepository
}

func NewUseCase(payments repository.PaymentRepository) *UseCase {
	return &UseCase{payments: payments}
}

// Execute returns the stored outcome for id, or repository.ErrNotFound when
// the identifier was never processed.
func (uc *UseCase) Execute(ctx context.Context, id string) (*payment.Payment, error) {
	return uc.payments.Find(ctx, id)
}
