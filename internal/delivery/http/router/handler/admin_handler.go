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

// AdminHandler serves the back-office endpoints. All routes behind it
// require the admin role.
type AdminHandler struct {
	orders   usecase.OrderUsecase
	products usecase.ProductUsecase
	logger   *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(orders usecase.OrderUsecase, products usecase.ProductUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

type updateOrderStatusRequest struct {
	Status         string `json:"status" validate:"required"`
	TrackingNumber string `json:"tracking_number"`
}

type productRequest struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description"`
	Price          float64           `json:"price" validate:"required,gt=0"`
	OriginalPrice  *float64          `json:"original_price"`
	Brand          string            `json:"brand" validate:"required"`
	Model          string            `json:"model"`
	Storage        string            `json:"storage"`
	Color          string            `json:"color"`
	Condition      string            `json:"condition"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	StockQuantity  int               `json:"stock_quantity" validate:"gte=0"`
	Category       string            `json:"category"`
}

func (r *productRequest) toInput() *usecase.ProductInput {
	return &usecase.ProductInput{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		Brand:          r.Brand,
		Model:          r.Model,
		Storage:        r.Storage,
		Color:          r.Color,
		Condition:      entity.ProductCondition(r.Condition),
		Images:         r.Images,
		Specifications: r.Specifications,
		StockQuantity:  r.StockQuantity,
		Category:       r.Category,
	}
}

// GetAllOrders returns every order with its customer attached.
func (h *AdminHandler) GetAllOrders(c echo.Context) error {
	orders, err := h.orders.GetAllOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// GetOrderStats returns the dashboard aggregate.
func (h *AdminHandler) GetOrderStats(c echo.Context) error {
	stats, err := h.orders.GetOrderStats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Order stats retrieved successfully")
}

// UpdateOrderStatus moves an order along the fulfilment track. An explicit
// tracking number is persisted; otherwise the first transition into shipped
// assigns one.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.orders.UpdateOrderStatus(c.Request().Context(), orderID, entity.OrderStatus(req.Status), req.TrackingNumber)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// CreateProduct adds a new catalog listing.
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.products.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// UpdateProduct replaces a listing's editable fields.
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.products.UpdateProduct(c.Request().Context(), id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct removes a listing.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	if err := h.products.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}
