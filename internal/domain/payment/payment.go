package payment

import "time"

type Status string

const (
	StatusRejected   Status = "Rejected"
	StatusAuthorized Status = "Authorized"
	StatusDeclined   Status = "Declined"
)

// Request carries the seven payment fields as submitted by the caller.
// Field formats are enforced by the validation package, not by this type.
type Request struct {
	CardNumber      string
	ExpirationMonth string
	ExpirationYear  string
	CVV             string
	Currency        string
	Amount          string
}

// Payment is the terminal outcome of processing one Request. It is built
// exactly once inside the processing use case and never mutated afterwards.
type Payment struct {
	id              string
	status          Status
	cardLastFour    string
	expirationMonth string
	expirationYear  string
	currency        string
	amount          string
	createdAt       time.Time
}

func NewPayment(id string, status Status, req Request) *Payment {
	return &Payment{
		id:              id,
		status:          status,
		cardLastFour:    lastFour(req.CardNumber),
		expirationMonth: req.ExpirationMonth,
		expirationYear:  req.ExpirationYear,
		currency:        req.Currency,
		amount:          req.Amount,
		createdAt:       time.Now(),
	}
}

func ReconstructPayment(
	id string,
	status Status,
	cardLastFour, expirationMonth, expirationYear, currency, amount string,
	createdAt time.Time,
) *Payment {
	return &Payment{
		id:              id,
		status:          status,
		cardLastFour:    cardLastFour,
		expirationMonth: expirationMonth,
		expirationYear:  expirationYear,
		currency:        currency,
		amount:          amount,
		createdAt:       createdAt,
	}
}

func (p *Payment) ID() string {
	return p.id
}

func (p *Payment) Status() Status {
	return p.status
}

func (p *Payment) CardLastFour() string {
	return p.cardLastFour
}

func (p *Payment) ExpirationMonth() string {
	return p.expirationMonth
}

func (p *Payment) ExpirationYear() string {
	return p.expirationYear
}

func (p *Payment) Currency() string {
	return p.currency
}

func (p *Payment) Amount() string {
	return p.amount
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

func lastFour(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
