package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/payment"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type checkoutService struct {
	orders      usecase.OrderUsecase
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	cartRepo    repository.CartRepository
	gateway     service.PaymentGateway
	config      *config.Config
	logger      *slog.Logger
}

// CheckoutServiceParams holds dependencies for the checkout service, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Orders      usecase.OrderUsecase
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	CartRepo    repository.CartRepository
	Gateway     service.PaymentGateway
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCheckoutService creates a new checkout orchestration service instance.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		orders:      params.Orders,
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		cartRepo:    params.CartRepo,
		gateway:     params.Gateway,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// Checkout validates the submission, freezes prices, creates the order with
// its stock reservation, charges the gateway and records the outcome. A
// declined charge leaves the order pending with payment_status=failed.
func (s *checkoutService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	if err := validateCheckoutInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user for checkout")
	}

	// Prices come from the catalog at this moment and are frozen onto the
	// order items; the client-submitted cart carries only ids and counts.
	orderItems := make([]usecase.CreateOrderItemInput, 0, len(input.Items))
	subtotal := 0.0
	for _, item := range input.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound
			}

			return nil, errors.Wrap(err, "failed to load product for checkout")
		}

		orderItems = append(orderItems, usecase.CreateOrderItemInput{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		subtotal += product.Price * float64(item.Quantity)
	}

	// Tax is applied exactly once, on the full-precision pre-tax sum.
	total := subtotal * (1 + s.config.Checkout.TaxRate)

	order, err := s.orders.CreateOrder(ctx, &usecase.CreateOrderInput{
		UserID:          input.UserID,
		Items:           orderItems,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		TotalAmount:     total,
	})
	if err != nil {
		return nil, err
	}

	expiryMonth, expiryYear := payment.SplitExpiry(input.Card.ExpiryDate)
	resp, err := s.gateway.ProcessPayment(ctx, &service.PaymentRequest{
		Amount:   total,
		Currency: s.config.Checkout.Currency,
		OrderID:  order.ID.String(),
		Customer: service.CustomerInfo{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		},
		Card: service.CardInfo{
			Number:      input.Card.Number,
			ExpiryMonth: expiryMonth,
			ExpiryYear:  expiryYear,
			CVV:         input.Card.CVV,
			Name:        input.Card.HolderName,
		},
		Billing: service.BillingAddress{
			Address:    input.ShippingAddress.Address,
			City:       input.ShippingAddress.City,
			PostalCode: input.ShippingAddress.PostalCode,
			Country:    "PK",
		},
	})
	if err != nil {
		return s.recordPaymentFailure(ctx, order, "", err.Error())
	}
	if !resp.Success {
		message := resp.Error
		if message == "" {
			message = resp.Message
		}

		return s.recordPaymentFailure(ctx, order, resp.TransactionID, message)
	}

	if err := s.orderRepo.RecordPaymentResult(ctx, order.ID,
		entity.OrderStatusConfirmed, entity.PaymentStatusCompleted, resp.TransactionID); err != nil {
		return nil, errors.Wrap(err, "failed to record payment result")
	}
	order.Status = entity.OrderStatusConfirmed
	order.PaymentStatus = entity.PaymentStatusCompleted
	order.PaymentID = resp.TransactionID

	// The paid-for items leave the cart. Failure here is logged, not fatal:
	// the order and charge already stand.
	if err := s.cartRepo.DeleteByUser(ctx, input.UserID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after checkout",
			slog.String("userID", input.UserID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("orderID", order.ID.String()),
		slog.String("transactionID", resp.TransactionID),
		slog.Float64("totalAmount", total),
	)

	return &usecase.CheckoutOutput{
		Order:            order,
		PaymentSucceeded: true,
		TransactionID:    resp.TransactionID,
		PaymentMessage:   resp.Message,
	}, nil
}

func (s *checkoutService) recordPaymentFailure(ctx context.Context, order *entity.Order, transactionID, message string) (*usecase.CheckoutOutput, error) {
	if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, entity.PaymentStatusFailed); err != nil {
		return nil, errors.Wrap(err, "failed to record payment failure")
	}
	order.PaymentStatus = entity.PaymentStatusFailed

	s.logger.WarnContext(ctx, "checkout payment failed",
		slog.String("orderID", order.ID.String()),
		slog.String("message", message),
	)

	return &usecase.CheckoutOutput{
		Order:            order,
		PaymentSucceeded: false,
		TransactionID:    transactionID,
		PaymentMessage:   message,
	}, nil
}

func validateCheckoutInput(input *usecase.CheckoutInput) error {
	if input == nil || input.UserID == uuid.Nil {
		return domainerrors.ErrValidationFailed.WrapMessage("user id is required")
	}
	if len(input.Items) == 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("checkout has no items")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil || item.Quantity <= 0 {
			return domainerrors.ErrValidationFailed.WrapMessage("checkout item is invalid")
		}
	}

	addr := input.ShippingAddress
	if addr.Name == "" || addr.Phone == "" || addr.Address == "" || addr.City == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("shipping address is incomplete")
	}
	if input.PaymentMethod == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("payment method is required")
	}

	card := input.Card
	if !payment.ValidateCardNumber(card.Number) {
		return domainerrors.ErrInvalidCard.WrapMessage("card number failed validation")
	}
	if !payment.ValidateExpiryDate(card.ExpiryDate) {
		return domainerrors.ErrInvalidCard.WrapMessage("card expiry is invalid or in the past")
	}
	if !payment.ValidateCVV(card.CVV) {
		return domainerrors.ErrInvalidCard.WrapMessage("cvv is invalid")
	}

	return nil
}
