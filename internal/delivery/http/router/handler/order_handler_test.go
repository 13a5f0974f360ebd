package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/delivery/http/response"
	"storefront/internal/delivery/http/validator"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mocksusecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderHandler(t *testing.T) (*OrderHandler, *mocksusecase.MockCheckoutUsecase, *mocksusecase.MockOrderUsecase) {
	t.Helper()

	checkoutUC := mocksusecase.NewMockCheckoutUsecase(t)
	orderUC := mocksusecase.NewMockOrderUsecase(t)

	return NewOrderHandler(checkoutUC, orderUC, slog.Default()), checkoutUC, orderUC
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestOrderHandler_CheckoutCreatesOrder(t *testing.T) {
	h, checkoutUC, _ := newOrderHandler(t)
	userID := uuid.New()
	productID := uuid.New()
	orderID := uuid.New()

	checkoutUC.EXPECT().
		Checkout(mock.Anything, mock.MatchedBy(func(input *usecase.CheckoutInput) bool {
			return input.UserID == userID &&
				len(input.Items) == 1 &&
				input.Items[0].ProductID == productID &&
				input.Items[0].Quantity == 2 &&
				input.PaymentMethod == "jazzcash"
		})).
		Return(&usecase.CheckoutOutput{
			Order:            &entity.Order{ID: orderID, UserID: userID, Status: entity.OrderStatusConfirmed},
			PaymentSucceeded: true,
			TransactionID:    "JC_1_abc",
		}, nil)

	body, err := json.Marshal(map[string]any{
		"items": []map[string]any{
			{"product_id": productID.String(), "quantity": 2},
		},
		"shipping_address": map[string]string{
			"name":        "Ayesha Khan",
			"phone":       "03001234567",
			"address":     "14-B Gulberg III",
			"city":        "Lahore",
			"postal_code": "54000",
		},
		"payment_method": "jazzcash",
		"card": map[string]string{
			"number":      "4532015112830366",
			"expiry_date": "12/29",
			"cvv":         "123",
			"holder_name": "Ayesha Khan",
		},
	})
	require.NoError(t, err)

	e := echo.New()
	e.Validator = validator.New()
	c, rec := newJSONContext(e, http.MethodPost, "/orders", string(body))
	c.Set("userID", userID)

	require.NoError(t, h.Checkout(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), orderID.String())
	assert.Contains(t, rec.Body.String(), "JC_1_abc")
}

func TestOrderHandler_CheckoutDeclineReturnsFailureEnvelope(t *testing.T) {
	h, checkoutUC, _ := newOrderHandler(t)
	userID := uuid.New()
	productID := uuid.New()
	orderID := uuid.New()

	checkoutUC.EXPECT().
		Checkout(mock.Anything, mock.Anything).
		Return(&usecase.CheckoutOutput{
			Order:            &entity.Order{ID: orderID, UserID: userID, Status: entity.OrderStatusPending},
			PaymentSucceeded: false,
			PaymentMessage:   "Your payment could not be processed. Please try again.",
		}, nil)

	body := `{"items":[{"product_id":"` + productID.String() + `","quantity":1}],` +
		`"shipping_address":{"name":"Ayesha Khan","phone":"03001234567","address":"14-B Gulberg III","city":"Lahore","postal_code":"54000"},` +
		`"payment_method":"jazzcash",` +
		`"card":{"number":"4532015112830366","expiry_date":"12/29","cvv":"123","holder_name":"Ayesha Khan"}}`

	e := echo.New()
	e.Validator = validator.New()
	c, rec := newJSONContext(e, http.MethodPost, "/orders", body)
	c.Set("userID", userID)

	require.NoError(t, h.Checkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "PAYMENT_FAILED", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "could not be processed")
	// The pending order still rides along so the client can retry payment.
	assert.Contains(t, rec.Body.String(), orderID.String())
}

func TestOrderHandler_CheckoutRejectsEmptyItems(t *testing.T) {
	h, _, _ := newOrderHandler(t)

	e := echo.New()
	e.Validator = validator.New()
	c, _ := newJSONContext(e, http.MethodPost, "/orders", `{"items":[],"payment_method":"card"}`)
	c.Set("userID", uuid.New())

	err := h.Checkout(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOrderHandler_GetOrderPassesAdminFlag(t *testing.T) {
	h, _, orderUC := newOrderHandler(t)
	userID := uuid.New()
	orderID := uuid.New()

	orderUC.EXPECT().
		GetOrder(mock.Anything, orderID, userID, true).
		Return(&entity.Order{ID: orderID}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderId")
	c.SetParamValues(orderID.String())
	c.Set("userID", userID)
	c.Set("role", "admin")

	require.NoError(t, h.GetOrder(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderHandler_CancelOrderReportsFee(t *testing.T) {
	h, _, orderUC := newOrderHandler(t)
	userID := uuid.New()
	orderID := uuid.New()

	orderUC.EXPECT().
		CancelOrder(mock.Anything, orderID, userID).
		Return(&usecase.CancelOrderOutput{
			Order:           &entity.Order{ID: orderID, Status: entity.OrderStatusCancelled},
			CancellationFee: 8000,
		}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/orders/"+orderID.String()+"/cancel", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderId")
	c.SetParamValues(orderID.String())
	c.Set("userID", userID)

	require.NoError(t, h.CancelOrder(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "8000")
}

func TestOrderHandler_CancelOrderSurfacesGuardErrors(t *testing.T) {
	h, _, orderUC := newOrderHandler(t)
	userID := uuid.New()
	orderID := uuid.New()

	orderUC.EXPECT().
		CancelOrder(mock.Anything, orderID, userID).
		Return(nil, domainerrors.ErrOrderNotCancellable)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/orders/"+orderID.String()+"/cancel", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderId")
	c.SetParamValues(orderID.String())
	c.Set("userID", userID)

	err := h.CancelOrder(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotCancellable))
}
