package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Batareeed/afterpay-go/afterpay"
	"github.com/Batareeed/afterpay-go/checkout"
	"github.com/Batareeed/afterpay-go/configcache"
	"github.com/Batareeed/afterpay-go/gateway"
)

func TestFetchConfiguration(t *testing.T) {
	const payload = `{"maximumAmount":{"amount":"1000.00","currency":"AUD"}}`

	var gotRequestID string
	router := chi.NewRouter()
	router.Get("/v2/configuration", func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := gateway.NewWithBase(server.URL, nil)
	raw, err := client.FetchConfiguration(context.Background())
	require.NoError(t, err)
	require.Equal(t, payload, string(raw))

	_, err = uuid.Parse(gotRequestID)
	require.NoError(t, err, "every call carries a request id")
}

func TestCreateCheckout(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/v1/checkouts", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Email  string         `json:"email"`
			Amount afterpay.Money `json:"amount"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "buyer@example.com", req.Email)
		require.Equal(t, "25.50", req.Amount.Amount)
		require.Equal(t, "AUD", req.Amount.Currency)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"url": "https://portal.afterpay.com/checkout/abc123",
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	amount, err := afterpay.NewMoney("25.50", "AUD")
	require.NoError(t, err)

	client := gateway.NewWithBase(server.URL, nil)
	raw, err := client.CreateCheckout(context.Background(), "buyer@example.com", amount)
	require.NoError(t, err)
	require.Contains(t, string(raw), "portal.afterpay.com")
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/v2/configuration", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("merchant account suspended\n"))
	})
	server := httptest.NewServer(router)
	defer server.Close()

	client := gateway.NewWithBase(server.URL, nil)
	_, err := client.FetchConfiguration(context.Background())

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Equal(t, "merchant account suspended", apiErr.Body)
}

func TestEnvironmentSelectsBase(t *testing.T) {
	client := gateway.New(afterpay.EnvironmentSandbox, nil)
	require.Equal(t, "https://global-api-sandbox.afterpay.com", client.Base)

	client = gateway.New(afterpay.EnvironmentProduction, nil)
	require.Equal(t, "https://global-api.afterpay.com", client.Base)
}

// TestClientFeedsCacheAndCheckout wires the client through the cache and the
// checkout repository, the way cmd/afterpay does.
func TestClientFeedsCacheAndCheckout(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/v2/configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"minimumAmount": {"amount": "1.00", "currency": "AUD"},
			"maximumAmount": {"amount": "1000.00", "currency": "AUD"}
		}`))
	})
	router.Post("/v1/checkouts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"url":"https://portal.afterpay.com/checkout/xyz"}`))
	})
	server := httptest.NewServer(router)
	defer server.Close()

	ctx := context.Background()
	client := gateway.NewWithBase(server.URL, nil)

	cache := configcache.New(configcache.NewMemoryStore(), client)
	cfg, err := cache.Configuration(ctx)
	require.NoError(t, err)
	require.Equal(t, "AUD", cfg.Currency)

	amount, err := afterpay.NewMoney("25.50", cfg.Currency)
	require.NoError(t, err)

	repo := checkout.NewRepository(client)
	u, err := repo.Checkout(ctx, "buyer@example.com", amount)
	require.NoError(t, err)
	require.Equal(t, "https://portal.afterpay.com/checkout/xyz", u.String())
}
