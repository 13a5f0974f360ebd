package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler serves the public catalog endpoints.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListProducts returns the catalog filtered by the query parameters.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	filter := repository.ProductFilter{
		Search:    c.QueryParam("search"),
		Brand:     c.QueryParam("brand"),
		Category:  c.QueryParam("category"),
		Condition: entity.ProductCondition(c.QueryParam("condition")),
		SortBy:    c.QueryParam("sortBy"),
		SortAsc:   c.QueryParam("sortOrder") == "asc",
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	products, err := h.uc.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// GetProduct returns a single catalog entry.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}
