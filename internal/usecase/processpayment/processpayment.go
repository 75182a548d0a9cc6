package processpayment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/cardstream/payment-gateway/internal/domain/bank"
	"github.com/cardstream/payment-gateway/internal/domain/payment"
	"github.com/cardstream/payment-gateway/internal/domain/repository"
	"github.com/cardstream/payment-gateway/internal/validation"
)

// UseCase converts an inbound payment request into a terminal outcome:
// invalid requests become Rejected without touching the acquirer, valid ones
// are forwarded for authorization and become Authorized or Declined. Every
// outcome is persisted exactly once before being returned.
type UseCase struct {
	payments   repository.PaymentRepository
	authorizer bank.Authorizer
	now        func() time.Time
}

func NewUseCase(payments repository.PaymentRepository, authorizer bank.Authorizer) *UseCase {
	return &UseCase{
		payments:   payments,
		authorizer: authorizer,
		now:        time.Now,
	}
}

// WithClock overrides the reference time used by the expiry rule. Tests pin
// it to exercise the month boundaries.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func (uc *UseCase) Execute(ctx context.Context, req payment.Request) (*payment.Payment, error) {
	if !validation.ValidateRequest(req, uc.now()) {
		p := payment.NewPayment(uuid.NewString(), payment.StatusRejected, req)
		if err := uc.payments.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("saving rejected payment: %w", err)
		}
		return p, nil
	}

	decision, err := uc.authorizer.Authorize(ctx, normalize(req))
	if err != nil {
		return nil, err
	}

	// An empty code means the acquirer failed to process the request; that
	// is a service failure, not a decline, and must not be persisted.
	if decision.AuthorizationCode == "" {
		return nil, &bank.ServiceError{Detail: "authorization response carried no code"}
	}

	status := payment.StatusDeclined
	if decision.Authorized {
		status = payment.StatusAuthorized
	}

	p := payment.NewPayment(decision.AuthorizationCode, status, req)
	if err := uc.payments.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving payment: %w", err)
	}
	return p, nil
}

// normalize converts a validated request into the acquirer's shape: a
// zero-padded MM/YYYY expiry and an integer amount. Parse errors cannot occur
// after validation.
func normalize(req payment.Request) bank.AuthorizationRequest {
	month, _ := strconv.Atoi(req.ExpirationMonth)
	amount, _ := strconv.ParseInt(req.Amount, 10, 64)
	return bank.AuthorizationRequest{
		CardNumber: req.CardNumber,
		ExpiryDate: fmt.Sprintf("%02d/%s", month, req.ExpirationYear),
		Currency:   req.Currency,
		Amount:     amount,
		CVV:        req.CVV,
	}
}
