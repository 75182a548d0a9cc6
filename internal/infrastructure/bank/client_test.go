package bank_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbank "github.com/cardstream/payment-gateway/internal/domain/bank"
	bankclient "github.com/cardstream/payment-gateway/internal/infrastructure/bank"
)

func request() domainbank.AuthorizationRequest {
	return domainbank.AuthorizationRequest{
		CardNumber: "4242424242424242",
		ExpiryDate: "07/2026",
		Currency:   "USD",
		Amount:     1050,
		CVV:        "123",
	}
}

func TestClient_Authorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "4242424242424242", payload["card_number"])
		assert.Equal(t, "07/2026", payload["expiry_date"])
		assert.Equal(t, "USD", payload["currency"])
		assert.Equal(t, float64(1050), payload["amount"])
		assert.Equal(t, "123", payload["cvv"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"authorized":         true,
			"authorization_code": "auth-abc",
		})
	}))
	defer srv.Close()

	client := bankclient.NewClient(srv.URL, srv.Client())

	decision, err := client.Authorize(context.Background(), request())

	require.NoError(t, err)
	assert.True(t, decision.Authorized)
	assert.Equal(t, "auth-abc", decision.AuthorizationCode)
}

func TestClient_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"authorized":         false,
			"authorization_code": "auth-def",
		})
	}))
	defer srv.Close()

	client := bankclient.NewClient(srv.URL, srv.Client())

	decision, err := client.Authorize(context.Background(), request())

	require.NoError(t, err)
	assert.False(t, decision.Authorized)
	assert.Equal(t, "auth-def", decision.AuthorizationCode)
}

func TestClient_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": "unsupported card scheme",
		})
	}))
	defer srv.Close()

	client := bankclient.NewClient(srv.URL, srv.Client())

	decision, err := client.Authorize(context.Background(), request())

	require.Error(t, err)
	assert.Nil(t, decision)
	var svcErr *domainbank.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Contains(t, svcErr.Detail, "unsupported card scheme")
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := bankclient.NewClient(srv.URL, srv.Client())

	_, err := client.Authorize(context.Background(), request())

	assert.ErrorIs(t, err, domainbank.ErrUnavailable)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := bankclient.NewClient(srv.URL, http.DefaultClient)

	_, err := client.Authorize(context.Background(), request())

	assert.ErrorIs(t, err, domainbank.ErrUnavailable)
}
