package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartFixtures struct {
	service     usecase.CartUsecase
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestCartService(t *testing.T) cartFixtures {
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	svc := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
	})

	return cartFixtures{
		service:     svc,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func TestCartService_AddToCart_NewRow(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	product := &entity.Product{ID: productID, Name: "Pixel 9", Price: 120000, StockQuantity: 4}

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(product, nil)
	fx.cartRepo.EXPECT().
		FindByUserAndProduct(ctx, userID, productID).
		Return(nil, repository.ErrCartItemNotFound)
	fx.cartRepo.EXPECT().
		Create(ctx, &entity.CartItem{UserID: userID, ProductID: productID, Quantity: 2}).
		Return(nil)

	item, err := fx.service.AddToCart(ctx, userID, productID, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, product, item.Product)
}

func TestCartService_AddToCart_MergesIntoExistingRow(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	product := &entity.Product{ID: productID, StockQuantity: 10}
	existing := &entity.CartItem{ID: uuid.New(), UserID: userID, ProductID: productID, Quantity: 1}

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(product, nil)
	fx.cartRepo.EXPECT().FindByUserAndProduct(ctx, userID, productID).Return(existing, nil)
	fx.cartRepo.EXPECT().UpdateQuantity(ctx, userID, productID, 3).Return(nil)

	item, err := fx.service.AddToCart(ctx, userID, productID, 2)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, item.ID)
	assert.Equal(t, 3, item.Quantity)
}

func TestCartService_AddToCart_RejectsOverStock(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	product := &entity.Product{ID: productID, StockQuantity: 2}
	existing := &entity.CartItem{UserID: userID, ProductID: productID, Quantity: 2}

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(product, nil)
	fx.cartRepo.EXPECT().FindByUserAndProduct(ctx, userID, productID).Return(existing, nil)

	item, err := fx.service.AddToCart(ctx, userID, productID, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Nil(t, item)
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	item, err := fx.service.AddToCart(ctx, uuid.New(), productID, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	assert.Nil(t, item)
}

func TestCartService_AddToCart_RejectsNonPositiveQuantity(t *testing.T) {
	fx := createTestCartService(t)

	item, err := fx.service.AddToCart(context.Background(), uuid.New(), uuid.New(), 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, item)
}

func TestCartService_UpdateCartItem_MissingRow(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.cartRepo.EXPECT().
		UpdateQuantity(ctx, userID, productID, 5).
		Return(repository.ErrCartItemNotFound)

	err := fx.service.UpdateCartItem(ctx, userID, productID, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().DeleteByUser(ctx, userID).Return(nil)

	require.NoError(t, fx.service.ClearCart(ctx, userID))
}
