package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardstream/payment-gateway/internal/domain/bank"
	"github.com/cardstream/payment-gateway/internal/domain/payment"
	"github.com/cardstream/payment-gateway/internal/domain/repository"
	"github.com/cardstream/payment-gateway/internal/usecase/paymentdetails"
	"github.com/cardstream/payment-gateway/internal/usecase/processpayment"
	"github.com/cardstream/payment-gateway/internal/validation"
)

type Handler struct {
	processUC *processpayment.UseCase
	detailsUC *paymentdetails.UseCase
}

func NewHandler(processUC *processpayment.UseCase, detailsUC *paymentdetails.UseCase) *Handler {
	return &Handler{
		processUC: processUC,
		detailsUC: detailsUC,
	}
}

type PaymentRequest struct {
	CardNumber          string `json:"card_number"`
	CardExpirationMonth string `json:"card_expiration_month"`
	CardExpirationYear  string `json:"card_expiration_year"`
	CardCVV             string `json:"card_cvv"`
	Currency            string `json:"currency"`
	Amount              string `json:"amount"`
}

type PaymentResponse struct {
	PaymentID           string `json:"payment_id"`
	Status              string `json:"status"`
	CardLastFour        string `json:"card_last_four"`
	CardExpirationMonth string `json:"card_expiration_month"`
	CardExpirationYear  string `json:"card_expiration_year"`
	Currency            string `json:"currency"`
	Amount              string `json:"amount"`
}

func (h *Handler) HandlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"app":"payment-gateway"}`))
}

func (h *Handler) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if msg, ok := checkShape(req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p, err := h.processUC.Execute(r.Context(), payment.Request{
		CardNumber:      req.CardNumber,
		ExpirationMonth: req.CardExpirationMonth,
		ExpirationYear:  req.CardExpirationYear,
		CVV:             req.CardCVV,
		Currency:        req.Currency,
		Amount:          req.Amount,
	})
	if err != nil {
		writeProcessingError(w, err)
		return
	}

	writePayment(w, p)
}

func (h *Handler) HandleGetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "payment_id")

	p, err := h.detailsUC.Execute(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writePayment(w, p)
}

// checkShape mirrors the transport-level constraints: every field present,
// card number and CVV within their length bounds, month/year/currency the
// right width. Business rules (expiry, currency table, amount positivity)
// stay with the processor, which resolves them into Rejected outcomes.
func checkShape(req PaymentRequest) (string, bool) {
	switch {
	case len(req.CardNumber) < 14 || len(req.CardNumber) > 19:
		return "card_number must be 14-19 characters", false
	case len(req.CardExpirationMonth) < 1 || len(req.CardExpirationMonth) > 2:
		return "card_expiration_month must be 1-2 characters", false
	case len(req.CardExpirationYear) != 4:
		return "card_expiration_year must be 4 characters", false
	case !validation.ValidCVV(req.CardCVV):
		return "card_cvv must be 3-4 digits", false
	case len(req.Currency) != 3:
		return "currency must be 3 characters", false
	case req.Amount == "":
		return "amount is required", false
	}
	return "", true
}

// writeProcessingError keeps the failure classes apart: a service failure is
// a bad gateway, an unreachable acquirer is service unavailable, anything
// else is internal. Validation failures never reach here.
func writeProcessingError(w http.ResponseWriter, err error) {
	var svcErr *bank.ServiceError
	switch {
	case errors.As(err, &svcErr):
		writeError(w, http.StatusBadGateway, svcErr.Error())
	case errors.Is(err, bank.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writePayment(w http.ResponseWriter, p *payment.Payment) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(PaymentResponse{
		PaymentID:           p.ID(),
		Status:              string(p.Status()),
		CardLastFour:        p.CardLastFour(),
		CardExpirationMonth: p.ExpirationMonth(),
		CardExpirationYear:  p.ExpirationYear(),
		Currency:            p.Currency(),
		Amount:              p.Amount(),
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
