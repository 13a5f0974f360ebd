// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order and checkout handlers.
type OrderHandler struct {
	checkout usecase.CheckoutUsecase
	orders   usecase.OrderUsecase
	logger   *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(checkout usecase.CheckoutUsecase, orders usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		logger:   logger,
	}
}

type checkoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type checkoutCardRequest struct {
	Number     string `json:"number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
	HolderName string `json:"holder_name"`
}

type checkoutRequest struct {
	Items           []checkoutItemRequest  `json:"items" validate:"required,min=1,dive"`
	ShippingAddress entity.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method" validate:"required"`
	Card            checkoutCardRequest    `json:"card"`
}

// Checkout handles the order placement request. A declined charge still
// creates the order in pending state, but the response is the 400 failure
// envelope carrying the gateway's message.
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.CheckoutInput{
		UserID:          userID,
		Items:           make([]usecase.CheckoutItemInput, 0, len(req.Items)),
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Card: usecase.CheckoutCardInput{
			Number:     req.Card.Number,
			ExpiryDate: req.Card.ExpiryDate,
			CVV:        req.Card.CVV,
			HolderName: req.Card.HolderName,
		},
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID in checkout items")
		}
		input.Items = append(input.Items, usecase.CheckoutItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	output, err := h.checkout.Checkout(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	// A declined charge leaves the order pending; the client gets the
	// failure envelope with the order attached so it can retry payment.
	if !output.PaymentSucceeded {
		return c.JSON(http.StatusBadRequest, response.Response{
			Success: false,
			Code:    http.StatusBadRequest,
			Message: "Order created but payment failed",
			Data: echo.Map{
				"order": output.Order,
			},
			Error: &response.ErrorInfo{
				Code:    "PAYMENT_FAILED",
				Details: output.PaymentMessage,
			},
		})
	}

	return response.Success(c, http.StatusCreated, echo.Map{
		"order": output.Order,
		"payment": echo.Map{
			"success":        true,
			"transaction_id": output.TransactionID,
			"message":        output.PaymentMessage,
		},
	}, "Order placed successfully")
}

// ListOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.orders.GetOrdersByUserID(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// GetOrder returns a single order. Non-admin callers can only read their own.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	role, _ := c.Get("role").(string)
	order, err := h.orders.GetOrder(c.Request().Context(), orderID, userID, role == "admin")
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// CancelOrder cancels the caller's order and reports the assessed fee.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	output, err := h.orders.CancelOrder(c.Request().Context(), orderID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, echo.Map{
		"order":            output.Order,
		"cancellation_fee": output.CancellationFee,
	}, "Order cancelled successfully")
}
