package impl

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// CartServiceParams holds dependencies for the cart service, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
}

// NewCartService creates a new shopping cart service instance.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
	}
}

// GetCart retrieves the user's cart with products attached.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	return items, nil
}

// AddToCart inserts a row or merges into the existing one, keeping at most
// one row per (user, product) pair.
func (s *cartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	if quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product for cart")
	}

	existing, err := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil && !errors.Is(err, repository.ErrCartItemNotFound) {
		return nil, errors.Wrap(err, "failed to check cart for existing item")
	}

	if existing != nil {
		newQuantity := existing.Quantity + quantity
		if !product.InStock(newQuantity) {
			return nil, domainerrors.ErrInsufficientStock
		}
		if err := s.cartRepo.UpdateQuantity(ctx, userID, productID, newQuantity); err != nil {
			return nil, errors.Wrap(err, "failed to merge cart quantities")
		}
		existing.Quantity = newQuantity
		existing.Product = product

		return existing, nil
	}

	if !product.InStock(quantity) {
		return nil, domainerrors.ErrInsufficientStock
	}

	item := &entity.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	item.Product = product

	return item, nil
}

// UpdateCartItem replaces the quantity of an existing row.
func (s *cartService) UpdateCartItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	if err := s.cartRepo.UpdateQuantity(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return domainerrors.ErrCartItemNotFound
		}

		return errors.Wrap(err, "failed to update cart item")
	}

	return nil
}

// RemoveFromCart deletes a single row.
func (s *cartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.cartRepo.Delete(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return domainerrors.ErrCartItemNotFound
		}

		return errors.Wrap(err, "failed to remove cart item")
	}

	return nil
}

// ClearCart empties the cart.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
