package payment

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testRequest() *service.PaymentRequest {
	return &service.PaymentRequest{
		Amount:   92000,
		Currency: "PKR",
		OrderID:  "order-123",
		Customer: service.CustomerInfo{
			Name:  "Ayesha Khan",
			Email: "ayesha@example.com",
			Phone: "+923001234567",
		},
		Card: service.CardInfo{
			Number:      "4532015112830366",
			ExpiryMonth: "06",
			ExpiryYear:  "27",
			CVV:         "123",
			Name:        "Ayesha Khan",
		},
		Billing: service.BillingAddress{
			Address:    "12 Mall Road",
			City:       "Lahore",
			PostalCode: "54000",
			Country:    "Pakistan",
		},
	}
}

func payfastConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.Env = "development"
	cfg.App.BaseURL = "http://localhost:8080"
	cfg.Payment.PayFast = &config.PayFastConfig{
		MerchantID:  "10042915",
		MerchantKey: "key",
		Passphrase:  "hunter2",
		BaseURL:     "https://sandbox.payfast.co.za",
	}

	return cfg
}

func jazzcashConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Env.Env = "development"
	cfg.App.BaseURL = "http://localhost:8080"
	cfg.Payment.JazzCash = &config.JazzCashConfig{
		MerchantID: "MC10001",
		Password:   "pw",
		APIKey:     "apikey",
		Secret:     "salt",
		BaseURL:    baseURL,
	}

	return cfg
}

func TestNew_ProfileSelection(t *testing.T) {
	gw, err := New(payfastConfig(), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, ProfilePayFast, gw.Profile())

	gw, err = New(jazzcashConfig("https://sandbox.jazzcash.com.pk"), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, ProfileJazzCash, gw.Profile())

	cfg := &config.Config{}
	cfg.Env.Env = "development"
	gw, err = New(cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, ProfileMock, gw.Profile())
}

func TestNew_ProductionWithoutGatewayFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Env = "production"

	_, err := New(cfg, discardLogger())
	assert.Error(t, err)
}

func TestProcessPayment_MockProfileShape(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Env = "development"
	gw, err := New(cfg, discardLogger())
	require.NoError(t, err)

	resp, err := gw.ProcessPayment(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	if resp.Success {
		assert.True(t, strings.HasPrefix(resp.TransactionID, "TXN_"))
	} else {
		assert.Equal(t, "Payment failed", resp.Error)
		assert.Empty(t, resp.TransactionID)
	}
}

func TestProcessPayment_JazzCashSuccess(t *testing.T) {
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ResponseCode":"000","ResponseMessage":"OK","pp_TxnRefNo":"order-123"}`))
	}))
	defer server.Close()

	gw, err := New(jazzcashConfig(server.URL), discardLogger())
	require.NoError(t, err)

	resp, err := gw.ProcessPayment(context.Background(), testRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "order-123", resp.TransactionID)

	// Amount travels as integer paisa.
	assert.Equal(t, "9200000", gotForm["pp_Amount"][0])
	assert.Equal(t, "PKR", gotForm["pp_TxnCurrency"][0])
	assert.NotEmpty(t, gotForm["pp_SecureHash"][0])
}

func TestProcessPayment_JazzCashDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ResponseCode":"117","ResponseMessage":"Insufficient balance"}`))
	}))
	defer server.Close()

	gw, err := New(jazzcashConfig(server.URL), discardLogger())
	require.NoError(t, err)

	resp, err := gw.ProcessPayment(context.Background(), testRequest())
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Insufficient balance", resp.Message)
}

func TestProcessPayment_TransportFailureInProduction(t *testing.T) {
	cfg := jazzcashConfig("http://127.0.0.1:1") // nothing listens here
	cfg.Env.Env = "production"

	gw, err := New(cfg, discardLogger())
	require.NoError(t, err)

	resp, err := gw.ProcessPayment(context.Background(), testRequest())
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Payment processing failed", resp.Error)
}

func TestVerifyAndRefund_AreSimulated(t *testing.T) {
	gw, err := New(payfastConfig(), discardLogger())
	require.NoError(t, err)

	resp, err := gw.VerifyPayment(context.Background(), "PF_1_abc")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "PF_1_abc", resp.TransactionID)

	resp, err = gw.RefundPayment(context.Background(), "PF_1_abc", 5000)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
