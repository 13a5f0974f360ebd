// Package payment implements the gateway adapters that normalize the
// PayFast and JazzCash wire protocols (and a development mock) behind the
// domain's PaymentGateway contract.
package payment

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

// Profile identifies which provider backs a gateway instance.
type Profile string

const (
	ProfilePayFast  Profile = "payfast"
	ProfileJazzCash Profile = "jazzcash"
	ProfileMock     Profile = "mock"
)

const requestTimeout = 30 * time.Second

// Gateway is the configured payment adapter. The profile is chosen once at
// construction; every call on the instance speaks that provider's protocol.
type Gateway struct {
	profile      Profile
	payfast      *config.PayFastConfig
	jazzcash     *config.JazzCashConfig
	appBaseURL   string
	isProduction bool
	client       *http.Client
	logger       *slog.Logger
	mock         *mockOutcomes
	now          func() time.Time
}

// New selects the gateway profile from configuration: PayFast when its
// merchant credentials are present, otherwise JazzCash, otherwise the mock.
// A production deployment without a configured provider is a startup error.
// The returned Gateway satisfies both service.PaymentGateway and
// service.CallbackDecoder.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	gw := &Gateway{
		appBaseURL:   cfg.App.BaseURL,
		isProduction: cfg.IsProduction(),
		client:       &http.Client{Timeout: requestTimeout},
		logger:       logger,
		mock:         newMockOutcomes(),
		now:          time.Now,
	}

	switch {
	case cfg.Payment.PayFast != nil && cfg.Payment.PayFast.MerchantID != "" && cfg.Payment.PayFast.MerchantKey != "":
		gw.profile = ProfilePayFast
		gw.payfast = cfg.Payment.PayFast
	case cfg.Payment.JazzCash != nil && cfg.Payment.JazzCash.MerchantID != "" && cfg.Payment.JazzCash.Password != "":
		gw.profile = ProfileJazzCash
		gw.jazzcash = cfg.Payment.JazzCash
	default:
		if cfg.IsProduction() {
			return nil, errors.New("no payment gateway configured for production")
		}
		gw.profile = ProfileMock
	}

	return gw, nil
}

// Profile exposes the selected provider, mainly for logging and tests.
func (g *Gateway) Profile() Profile {
	return g.profile
}

// ProcessPayment dispatches the request through the configured provider.
// Outside production, a transport or parse failure degrades to the mock
// outcome so checkout flows stay usable without gateway connectivity; in
// production the failure surfaces as a failed payment.
func (g *Gateway) ProcessPayment(ctx context.Context, req *service.PaymentRequest) (*service.PaymentResponse, error) {
	g.logger.Info("processing payment",
		slog.String("gateway", string(g.profile)),
		slog.String("orderId", req.OrderID),
		slog.Float64("amount", req.Amount),
	)

	var (
		resp *service.PaymentResponse
		err  error
	)
	switch g.profile {
	case ProfilePayFast:
		resp, err = g.processPayFast(ctx, req)
	case ProfileJazzCash:
		resp, err = g.processJazzCash(ctx, req)
	default:
		return g.mock.outcome("TXN"), nil
	}

	if err != nil {
		if !g.isProduction {
			g.logger.Warn("gateway unreachable, using mock outcome",
				slog.String("gateway", string(g.profile)),
				slog.String("orderId", req.OrderID),
				slog.Any("error", err),
			)

			return g.mock.outcome("TXN"), nil
		}

		g.logger.Error("payment processing failed",
			slog.String("gateway", string(g.profile)),
			slog.String("orderId", req.OrderID),
			slog.Any("error", err),
		)

		return &service.PaymentResponse{
			Success: false,
			Error:   "Payment processing failed",
			Message: "An error occurred while processing your payment. Please try again.",
		}, nil
	}

	return resp, nil
}

// VerifyPayment is a placeholder: it always reports success. A real
// implementation would call the provider's transaction-status endpoint.
// Callers must not rely on it for settlement guarantees.
func (g *Gateway) VerifyPayment(ctx context.Context, transactionID string) (*service.PaymentResponse, error) {
	g.logger.Info("verifying payment (simulated)", slog.String("transactionId", transactionID))

	return &service.PaymentResponse{
		Success:       true,
		TransactionID: transactionID,
		Message:       "Payment verified successfully",
	}, nil
}

// RefundPayment is a placeholder: it always reports success. A real
// implementation would call the provider's refund endpoint.
func (g *Gateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (*service.PaymentResponse, error) {
	g.logger.Info("processing refund (simulated)",
		slog.String("transactionId", transactionID),
		slog.Float64("amount", amount),
	)

	return &service.PaymentResponse{
		Success:       true,
		TransactionID: transactionID,
		Message:       "Refund processed successfully",
	}, nil
}
