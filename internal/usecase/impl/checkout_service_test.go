package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validCardNumber = "4532015112830366"

// checkoutFixtures wires a real order service (with a pass-through
// transaction manager) underneath the checkout service so the flow from
// validation to stock reservation runs end to end.
type checkoutFixtures struct {
	service     usecase.CheckoutUsecase
	orderRepo   *mockRepo.MockOrderRepository
	productRepo *mockRepo.MockProductRepository
	userRepo    *mockRepo.MockUserRepository
	cartRepo    *mockRepo.MockCartRepository
	gateway     *mockSvc.MockPaymentGateway
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
}

func createTestCheckoutService(t *testing.T) checkoutFixtures {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	gateway := mockSvc.NewMockPaymentGateway(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	tracking := mockSvc.NewMockTrackingNumberGenerator(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	orders := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		Tracking:  tracking,
		Logger:    logger,
	})

	cfg := &config.Config{Checkout: config.CheckoutConfig{TaxRate: 0.15, Currency: "PKR"}}
	checkout := NewCheckoutService(CheckoutServiceParams{
		Orders:      orders,
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		CartRepo:    cartRepo,
		Gateway:     gateway,
		Config:      cfg,
		Logger:      logger,
	})

	return checkoutFixtures{
		service:     checkout,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		cartRepo:    cartRepo,
		gateway:     gateway,
		txManager:   txManager,
		factory:     factory,
	}
}

// expectTransaction makes the transaction manager run the callback against
// a factory backed by the fixture's repositories.
func (f checkoutFixtures) expectTransaction(ctx context.Context) {
	f.factory.EXPECT().ProductRepo().Return(f.productRepo).Maybe()
	f.factory.EXPECT().OrderRepo().Return(f.orderRepo).Maybe()
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.factory)
		})
}

func validCheckoutInput(userID, productID uuid.UUID) *usecase.CheckoutInput {
	return &usecase.CheckoutInput{
		UserID: userID,
		Items: []usecase.CheckoutItemInput{
			{ProductID: productID, Quantity: 1},
		},
		ShippingAddress: entity.ShippingAddress{
			Name: "Ayesha Khan", Phone: "03001234567",
			Address: "12-B Gulberg III", City: "Lahore", PostalCode: "54000",
		},
		PaymentMethod: "jazzcash",
		Card: usecase.CheckoutCardInput{
			Number:     validCardNumber,
			ExpiryDate: "12/29",
			CVV:        "123",
			HolderName: "Ayesha Khan",
		},
	}
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	orderID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{
		ID: userID, Name: "Ayesha Khan", Email: "ayesha@example.com", Phone: "03001234567",
	}, nil)
	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(&entity.Product{
		ID: productID, Name: "Galaxy S24", Price: 80000, StockQuantity: 3,
	}, nil)

	fx.expectTransaction(ctx)
	fx.productRepo.EXPECT().AdjustStock(ctx, productID, -1).Return(nil)
	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(ctx context.Context, order *entity.Order) {
			order.ID = orderID
		}).
		Return(nil)

	// 80000 pre-tax becomes 92000 with the 15% tax applied once.
	fx.gateway.EXPECT().
		ProcessPayment(ctx, mock.MatchedBy(func(req *service.PaymentRequest) bool {
			return req.Amount == 92000 && req.OrderID == orderID.String() &&
				req.Card.ExpiryMonth == "12" && req.Card.ExpiryYear == "29"
		})).
		Return(&service.PaymentResponse{Success: true, TransactionID: "JC_1_abc"}, nil)

	fx.orderRepo.EXPECT().
		RecordPaymentResult(ctx, orderID, entity.OrderStatusConfirmed, entity.PaymentStatusCompleted, "JC_1_abc").
		Return(nil)
	fx.cartRepo.EXPECT().DeleteByUser(ctx, userID).Return(nil)

	output, err := fx.service.Checkout(ctx, validCheckoutInput(userID, productID))

	require.NoError(t, err)
	assert.True(t, output.PaymentSucceeded)
	assert.Equal(t, "JC_1_abc", output.TransactionID)
	assert.Equal(t, entity.OrderStatusConfirmed, output.Order.Status)
	assert.Equal(t, entity.PaymentStatusCompleted, output.Order.PaymentStatus)
	assert.Equal(t, 92000.0, output.Order.TotalAmount)
	assert.Equal(t, "JC_1_abc", output.Order.PaymentID)
}

func TestCheckoutService_Checkout_BareDigitExpiryReachesGatewaySplit(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	orderID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID, Name: "A"}, nil)
	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(&entity.Product{
		ID: productID, Price: 40000, StockQuantity: 2,
	}, nil)

	fx.expectTransaction(ctx)
	fx.productRepo.EXPECT().AdjustStock(ctx, productID, -1).Return(nil)
	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(ctx context.Context, order *entity.Order) {
			order.ID = orderID
		}).
		Return(nil)

	// "1229" validates the same as "12/29" and must split the same way.
	fx.gateway.EXPECT().
		ProcessPayment(ctx, mock.MatchedBy(func(req *service.PaymentRequest) bool {
			return req.Card.ExpiryMonth == "12" && req.Card.ExpiryYear == "29"
		})).
		Return(&service.PaymentResponse{Success: true, TransactionID: "JC_2_def"}, nil)

	fx.orderRepo.EXPECT().
		RecordPaymentResult(ctx, orderID, entity.OrderStatusConfirmed, entity.PaymentStatusCompleted, "JC_2_def").
		Return(nil)
	fx.cartRepo.EXPECT().DeleteByUser(ctx, userID).Return(nil)

	input := validCheckoutInput(userID, productID)
	input.Card.ExpiryDate = "1229"

	output, err := fx.service.Checkout(ctx, input)

	require.NoError(t, err)
	assert.True(t, output.PaymentSucceeded)
}

func TestCheckoutService_Checkout_DeclinedPaymentLeavesOrderPending(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	orderID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID, Name: "A"}, nil)
	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(&entity.Product{
		ID: productID, Price: 40000, StockQuantity: 2,
	}, nil)

	fx.expectTransaction(ctx)
	fx.productRepo.EXPECT().AdjustStock(ctx, productID, -1).Return(nil)
	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(ctx context.Context, order *entity.Order) {
			order.ID = orderID
		}).
		Return(nil)

	fx.gateway.EXPECT().
		ProcessPayment(ctx, mock.AnythingOfType("*service.PaymentRequest")).
		Return(&service.PaymentResponse{Success: false, Error: "Transaction declined by issuer"}, nil)

	fx.orderRepo.EXPECT().
		UpdatePaymentStatus(ctx, orderID, entity.PaymentStatusFailed).
		Return(nil)

	output, err := fx.service.Checkout(ctx, validCheckoutInput(userID, productID))

	require.NoError(t, err)
	assert.False(t, output.PaymentSucceeded)
	assert.Equal(t, "Transaction declined by issuer", output.PaymentMessage)
	assert.Equal(t, entity.OrderStatusPending, output.Order.Status)
	assert.Equal(t, entity.PaymentStatusFailed, output.Order.PaymentStatus)
}

func TestCheckoutService_Checkout_InvalidCardRejectedUpFront(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	input := validCheckoutInput(uuid.New(), uuid.New())
	input.Card.Number = "4532015112830367" // altered final digit

	output, err := fx.service.Checkout(ctx, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCard)
	assert.Nil(t, output)
}

func TestCheckoutService_Checkout_IncompleteAddressRejected(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	input := validCheckoutInput(uuid.New(), uuid.New())
	input.ShippingAddress.City = ""

	output, err := fx.service.Checkout(ctx, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, output)
}

func TestCheckoutService_Checkout_UnknownProduct(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)
	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	output, err := fx.service.Checkout(ctx, validCheckoutInput(userID, productID))

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	assert.Nil(t, output)
}
