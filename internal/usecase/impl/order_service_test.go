package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	orderRepo *mockRepo.MockOrderRepository
	tracking  *mockSvc.MockTrackingNumberGenerator
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	tracking := mockSvc.NewMockTrackingNumberGenerator(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		Tracking:  tracking,
		Logger:    logger,
	})

	return orderServiceFixtures{
		service:   service,
		txManager: txManager,
		orderRepo: orderRepo,
		tracking:  tracking,
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	productID := uuid.New()
	input := &usecase.CreateOrderInput{
		UserID: uuid.New(),
		Items: []usecase.CreateOrderItemInput{
			{ProductID: productID, Quantity: 2, Price: 40000},
		},
		ShippingAddress: entity.ShippingAddress{
			Name: "Ayesha Khan", Phone: "03001234567",
			Address: "12-B Gulberg III", City: "Lahore",
		},
		PaymentMethod: "jazzcash",
		TotalAmount:   92000,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			txProductRepo := mockRepo.NewMockProductRepository(t)
			txOrderRepo := mockRepo.NewMockOrderRepository(t)

			factory.EXPECT().ProductRepo().Return(txProductRepo)
			factory.EXPECT().OrderRepo().Return(txOrderRepo)

			txProductRepo.EXPECT().AdjustStock(ctx, productID, -2).Return(nil)
			txOrderRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Order")).
				Run(func(ctx context.Context, order *entity.Order) {
					order.ID = uuid.New()
				}).
				Return(nil)

			return fn(factory)
		})

	order, err := fx.service.CreateOrder(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 92000.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 40000.0, order.Items[0].Price)
}

func TestOrderService_CreateOrder_InsufficientStockRollsBack(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	productID := uuid.New()
	input := &usecase.CreateOrderInput{
		UserID: uuid.New(),
		Items: []usecase.CreateOrderItemInput{
			{ProductID: productID, Quantity: 5, Price: 40000},
		},
		ShippingAddress: entity.ShippingAddress{
			Name: "Ayesha Khan", Phone: "03001234567",
			Address: "12-B Gulberg III", City: "Lahore",
		},
		PaymentMethod: "jazzcash",
		TotalAmount:   230000,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			txProductRepo := mockRepo.NewMockProductRepository(t)

			factory.EXPECT().ProductRepo().Return(txProductRepo)
			txProductRepo.EXPECT().
				AdjustStock(ctx, productID, -5).
				Return(repository.ErrInsufficientStock)

			// The transaction manager rolls back and surfaces the error.
			return fn(factory)
		})

	order, err := fx.service.CreateOrder(ctx, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Nil(t, order)
}

func TestOrderService_CreateOrder_ValidationFailures(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	validAddress := entity.ShippingAddress{
		Name: "A", Phone: "1", Address: "x", City: "y",
	}

	tests := []struct {
		name  string
		input *usecase.CreateOrderInput
	}{
		{"nil input", nil},
		{"missing user", &usecase.CreateOrderInput{
			Items:           []usecase.CreateOrderItemInput{{ProductID: uuid.New(), Quantity: 1, Price: 100}},
			ShippingAddress: validAddress, PaymentMethod: "jazzcash", TotalAmount: 115,
		}},
		{"no items", &usecase.CreateOrderInput{
			UserID: uuid.New(), ShippingAddress: validAddress,
			PaymentMethod: "jazzcash", TotalAmount: 115,
		}},
		{"zero quantity", &usecase.CreateOrderInput{
			UserID:          uuid.New(),
			Items:           []usecase.CreateOrderItemInput{{ProductID: uuid.New(), Quantity: 0, Price: 100}},
			ShippingAddress: validAddress, PaymentMethod: "jazzcash", TotalAmount: 115,
		}},
		{"zero total", &usecase.CreateOrderInput{
			UserID:          uuid.New(),
			Items:           []usecase.CreateOrderItemInput{{ProductID: uuid.New(), Quantity: 1, Price: 100}},
			ShippingAddress: validAddress, PaymentMethod: "jazzcash",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := fx.service.CreateOrder(ctx, tt.input)

			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Nil(t, order)
		})
	}
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(nil, repository.ErrOrderNotFound)

	order, err := fx.service.GetOrder(ctx, orderID, uuid.New(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	assert.Nil(t, order)
}

func TestOrderService_GetOrder_OwnershipEnforced(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	ownerID := uuid.New()
	strangerID := uuid.New()

	stored := &entity.Order{ID: orderID, UserID: ownerID, Status: entity.OrderStatusPending}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(stored, nil).Times(3)

	_, err := fx.service.GetOrder(ctx, orderID, strangerID, false)
	assert.ErrorIs(t, err, domainerrors.ErrOrderOwnershipViolation)

	order, err := fx.service.GetOrder(ctx, orderID, ownerID, false)
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)

	// Admins may read any order.
	order, err = fx.service.GetOrder(ctx, orderID, strangerID, true)
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
}

func TestOrderService_UpdateOrderStatus_ShippedAssignsTracking(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusProcessing}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(stored, nil)
	fx.tracking.EXPECT().Generate().Return("MS123456AB7C")
	fx.orderRepo.EXPECT().
		UpdateStatus(ctx, orderID, entity.OrderStatusShipped, "MS123456AB7C").
		Return(nil)

	order, err := fx.service.UpdateOrderStatus(ctx, orderID, entity.OrderStatusShipped, "")

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, order.Status)
	assert.Equal(t, "MS123456AB7C", order.TrackingNumber)
}

func TestOrderService_UpdateOrderStatus_ExplicitTrackingWins(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusProcessing}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(stored, nil)
	// No Generate expectation: a caller-supplied number suppresses generation.
	fx.orderRepo.EXPECT().
		UpdateStatus(ctx, orderID, entity.OrderStatusShipped, "CN998877665PK").
		Return(nil)

	order, err := fx.service.UpdateOrderStatus(ctx, orderID, entity.OrderStatusShipped, "CN998877665PK")

	require.NoError(t, err)
	assert.Equal(t, "CN998877665PK", order.TrackingNumber)
}

func TestOrderService_UpdateOrderStatus_KeepsExistingTracking(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	stored := &entity.Order{
		ID: orderID, UserID: uuid.New(),
		Status:         entity.OrderStatusShipped,
		TrackingNumber: "MS654321ZZ9X",
	}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(stored, nil)
	fx.orderRepo.EXPECT().
		UpdateStatus(ctx, orderID, entity.OrderStatusShipped, "").
		Return(nil)

	order, err := fx.service.UpdateOrderStatus(ctx, orderID, entity.OrderStatusShipped, "")

	require.NoError(t, err)
	assert.Equal(t, "MS654321ZZ9X", order.TrackingNumber)
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	order, err := fx.service.UpdateOrderStatus(context.Background(), uuid.New(), entity.OrderStatus("misplaced"), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, order)
}

func TestOrderService_CancelOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	ownerID := uuid.New()
	productID := uuid.New()

	stored := &entity.Order{
		ID:          orderID,
		UserID:      ownerID,
		Status:      entity.OrderStatusConfirmed,
		TotalAmount: 92000,
		Items: []*entity.OrderItem{
			{ProductID: productID, Quantity: 2, Price: 40000},
		},
	}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(stored, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			txOrderRepo := mockRepo.NewMockOrderRepository(t)
			txProductRepo := mockRepo.NewMockProductRepository(t)

			factory.EXPECT().OrderRepo().Return(txOrderRepo)
			factory.EXPECT().ProductRepo().Return(txProductRepo)

			// 92000 is in the 80000..150000 band.
			txOrderRepo.EXPECT().MarkCancelled(ctx, orderID, 8000.0).Return(nil)
			txProductRepo.EXPECT().AdjustStock(ctx, productID, 2).Return(nil)

			return fn(factory)
		})

	output, err := fx.service.CancelOrder(ctx, orderID, ownerID)

	require.NoError(t, err)
	assert.Equal(t, 8000.0, output.CancellationFee)
	assert.Equal(t, entity.OrderStatusCancelled, output.Order.Status)
	require.NotNil(t, output.Order.CancellationFee)
	assert.Equal(t, 8000.0, *output.Order.CancellationFee)
}

func TestOrderService_CancelOrder_GuardsMutateNothing(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	tests := []struct {
		name    string
		order   *entity.Order
		caller  uuid.UUID
		wantErr error
	}{
		{
			name:    "stranger cannot cancel",
			order:   &entity.Order{UserID: ownerID, Status: entity.OrderStatusPending},
			caller:  uuid.New(),
			wantErr: domainerrors.ErrOrderOwnershipViolation,
		},
		{
			name:    "already cancelled",
			order:   &entity.Order{UserID: ownerID, Status: entity.OrderStatusCancelled},
			caller:  ownerID,
			wantErr: domainerrors.ErrOrderAlreadyCancelled,
		},
		{
			name:    "shipped is past the point of no return",
			order:   &entity.Order{UserID: ownerID, Status: entity.OrderStatusShipped},
			caller:  ownerID,
			wantErr: domainerrors.ErrOrderNotCancellable,
		},
		{
			name:    "delivered cannot be cancelled",
			order:   &entity.Order{UserID: ownerID, Status: entity.OrderStatusDelivered},
			caller:  ownerID,
			wantErr: domainerrors.ErrOrderNotCancellable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestOrderService(t)

			orderID := uuid.New()
			tt.order.ID = orderID
			fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(tt.order, nil)

			// No Execute expectation: a rejected cancel must not open a transaction.
			output, err := fx.service.CancelOrder(ctx, orderID, tt.caller)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, output)
		})
	}
}

func TestOrderService_GetOrderStats_Aggregates(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orders := []*entity.Order{
		{Status: entity.OrderStatusPending, PaymentStatus: entity.PaymentStatusPending, TotalAmount: 10000},
		{Status: entity.OrderStatusConfirmed, PaymentStatus: entity.PaymentStatusCompleted, TotalAmount: 92000},
		{Status: entity.OrderStatusDelivered, PaymentStatus: entity.PaymentStatusCompleted, TotalAmount: 57500},
		{Status: entity.OrderStatusDelivered, PaymentStatus: entity.PaymentStatusCompleted, TotalAmount: 34500},
		{Status: entity.OrderStatusCancelled, PaymentStatus: entity.PaymentStatusFailed, TotalAmount: 46000},
	}
	fx.orderRepo.EXPECT().FindAll(ctx).Return(orders, nil)

	stats, err := fx.service.GetOrderStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.ConfirmedOrders)
	assert.Equal(t, 2, stats.DeliveredOrders)
	assert.Equal(t, 1, stats.CancelledOrders)

	// Only delivered orders count toward revenue; the confirmed-but-paid
	// order does not.
	assert.Equal(t, 92000.0, stats.TotalRevenue)
}

func TestOrderService_GetOrderStats_DegradesToZeroOnStoreError(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	fx.orderRepo.EXPECT().FindAll(ctx).Return(nil, errors.New("connection refused"))

	stats, err := fx.service.GetOrderStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, &usecase.OrderStats{}, stats)
}
