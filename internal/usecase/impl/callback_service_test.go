package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/payment"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type callbackFixtures struct {
	service     usecase.PaymentCallbackUsecase
	decoder     *mockSvc.MockCallbackDecoder
	orderRepo   *mockRepo.MockOrderRepository
	productRepo *mockRepo.MockProductRepository
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
}

func createTestCallbackService(t *testing.T) callbackFixtures {
	decoder := mockSvc.NewMockCallbackDecoder(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewCallbackService(CallbackServiceParams{
		Decoder:   decoder,
		OrderRepo: orderRepo,
		TxManager: txManager,
		Logger:    logger,
	})

	return callbackFixtures{
		service:     svc,
		decoder:     decoder,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txManager:   txManager,
		factory:     factory,
	}
}

// expectTransaction makes the transaction manager run the callback against
// a factory backed by the fixture's repositories.
func (f callbackFixtures) expectTransaction(ctx context.Context) {
	f.factory.EXPECT().OrderRepo().Return(f.orderRepo).Maybe()
	f.factory.EXPECT().ProductRepo().Return(f.productRepo).Maybe()
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.factory)
		})
}

func TestCallbackService_HandleCallback_Success(t *testing.T) {
	fx := createTestCallbackService(t)

	ctx := context.Background()
	orderID := uuid.New()
	fields := map[string]string{"pp_TxnRefNo": orderID.String(), "pp_ResponseCode": "000"}

	fx.decoder.EXPECT().DecodeCallback(fields).Return(&service.CallbackNotification{
		OrderID:       orderID.String(),
		TransactionID: "JC_77_ok",
		Succeeded:     true,
	}, nil)
	fx.orderRepo.EXPECT().
		RecordPaymentResult(ctx, orderID, entity.OrderStatusConfirmed, entity.PaymentStatusCompleted, "JC_77_ok").
		Return(nil)

	result, err := fx.service.HandleCallback(ctx, fields)

	require.NoError(t, err)
	assert.Equal(t, orderID, result.OrderID)
	assert.True(t, result.Succeeded)
}

func TestCallbackService_HandleCallback_FailureCancelsOrderAndRestocks(t *testing.T) {
	fx := createTestCallbackService(t)

	ctx := context.Background()
	orderID := uuid.New()
	productID := uuid.New()
	fields := map[string]string{"pp_TxnRefNo": orderID.String(), "pp_ResponseCode": "117"}

	fx.decoder.EXPECT().DecodeCallback(fields).Return(&service.CallbackNotification{
		OrderID:       orderID.String(),
		TransactionID: "JC_77_no",
		Succeeded:     false,
		Message:       "Transaction declined",
	}, nil)
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{
		ID:     orderID,
		Status: entity.OrderStatusPending,
		Items:  []*entity.OrderItem{{ProductID: productID, Quantity: 2}},
	}, nil)
	fx.expectTransaction(ctx)
	fx.orderRepo.EXPECT().
		RecordPaymentResult(ctx, orderID, entity.OrderStatusCancelled, entity.PaymentStatusFailed, "JC_77_no").
		Return(nil)
	fx.productRepo.EXPECT().AdjustStock(ctx, productID, 2).Return(nil)

	result, err := fx.service.HandleCallback(ctx, fields)

	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, "Transaction declined", result.Message)
}

func TestCallbackService_HandleCallback_ReplayedFailureDoesNotRestockTwice(t *testing.T) {
	fx := createTestCallbackService(t)

	ctx := context.Background()
	orderID := uuid.New()
	fields := map[string]string{"pp_TxnRefNo": orderID.String(), "pp_ResponseCode": "117"}

	fx.decoder.EXPECT().DecodeCallback(fields).Return(&service.CallbackNotification{
		OrderID:       orderID.String(),
		TransactionID: "JC_77_no",
		Succeeded:     false,
	}, nil)
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{
		ID:     orderID,
		Status: entity.OrderStatusCancelled,
		Items:  []*entity.OrderItem{{ProductID: uuid.New(), Quantity: 2}},
	}, nil)

	// No transaction expectation: the replay is a no-op.
	result, err := fx.service.HandleCallback(ctx, fields)

	require.NoError(t, err)
	assert.False(t, result.Succeeded)
}

func TestCallbackService_HandleCallback_SignatureMismatchMutatesNothing(t *testing.T) {
	fx := createTestCallbackService(t)

	ctx := context.Background()
	fields := map[string]string{"pp_TxnRefNo": uuid.New().String()}

	fx.decoder.EXPECT().DecodeCallback(fields).Return(nil, payment.ErrSignatureMismatch)

	// No RecordPaymentResult expectation: a tampered callback cannot touch the order.
	result, err := fx.service.HandleCallback(ctx, fields)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
	assert.Nil(t, result)
}

func TestCallbackService_HandleCallback_UnknownFormat(t *testing.T) {
	fx := createTestCallbackService(t)

	ctx := context.Background()
	fields := map[string]string{"unrelated": "junk"}

	fx.decoder.EXPECT().DecodeCallback(fields).Return(nil, payment.ErrUnknownCallbackFormat)

	result, err := fx.service.HandleCallback(ctx, fields)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, result)
}

func TestCallbackService_HandleCallback_InvalidOrderID(t *testing.T) {
	fx := createTestCallbackService(t)

	ctx := context.Background()
	fields := map[string]string{"m_payment_id": "not-a-uuid"}

	fx.decoder.EXPECT().DecodeCallback(fields).Return(&service.CallbackNotification{
		OrderID:   "not-a-uuid",
		Succeeded: true,
	}, nil)

	result, err := fx.service.HandleCallback(ctx, fields)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, result)
}

func TestCallbackService_HandleCallback_OrderMissing(t *testing.T) {
	fx := createTestCallbackService(t)

	ctx := context.Background()
	orderID := uuid.New()
	fields := map[string]string{"m_payment_id": orderID.String()}

	fx.decoder.EXPECT().DecodeCallback(fields).Return(&service.CallbackNotification{
		OrderID:       orderID.String(),
		TransactionID: "PF_404",
		Succeeded:     true,
	}, nil)
	fx.orderRepo.EXPECT().
		RecordPaymentResult(ctx, orderID, entity.OrderStatusConfirmed, entity.PaymentStatusCompleted, "PF_404").
		Return(repository.ErrOrderNotFound)

	result, err := fx.service.HandleCallback(ctx, fields)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	assert.Nil(t, result)
}
