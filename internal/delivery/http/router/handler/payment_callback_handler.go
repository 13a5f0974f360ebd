package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"storefront/config"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentCallbackHandler receives gateway notifications. PayFast posts a
// form, JazzCash and the browser return leg arrive as query strings; both
// land here and are flattened into one field map for the usecase.
type PaymentCallbackHandler struct {
	uc     usecase.PaymentCallbackUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewPaymentCallbackHandler is the constructor for PaymentCallbackHandler.
func NewPaymentCallbackHandler(uc usecase.PaymentCallbackUsecase, cfg *config.Config, logger *slog.Logger) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

// HandleNotification verifies and applies a gateway callback, then 302s the
// shopper to the storefront's success or failure page. A signature mismatch
// is rejected with 400 before any order is touched.
func (h *PaymentCallbackHandler) HandleNotification(c echo.Context) error {
	var values url.Values
	if c.Request().Method == http.MethodPost {
		formValues, err := c.FormParams()
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Malformed callback payload")
		}
		values = formValues
	} else {
		values = c.QueryParams()
	}

	fields := make(map[string]string, len(values))
	for key := range values {
		fields[key] = values.Get(key)
	}

	result, err := h.uc.HandleCallback(c.Request().Context(), fields)
	if err != nil {
		return errors.WithStack(err)
	}

	if result.Succeeded {
		return c.Redirect(http.StatusFound, h.cfg.App.BaseURL+"/payment/success?orderId="+result.OrderID.String())
	}

	failureURL := h.cfg.App.BaseURL + "/payment/failure?orderId=" + result.OrderID.String() +
		"&message=" + url.QueryEscape(result.Message)

	return c.Redirect(http.StatusFound, failureURL)
}
