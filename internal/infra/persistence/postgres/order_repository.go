package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order together with its line items. GORM inserts
// the association rows with the generated order ID in the same statement batch.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order references an unknown user or product")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Propagate generated IDs and timestamps back to the entity.
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		if i < len(order.Items) {
			order.Items[i].ID = itemM.ID
			order.Items[i].OrderID = itemM.OrderID
		}
	}

	return nil
}

// FindByID retrieves a single order with its items and their products.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindByUserID retrieves a user's orders, newest first.
func (repo *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user id")
	}

	return toOrderDomainSlice(orderMs), nil
}

// FindAll retrieves every order with items and owning users, newest first.
func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("User").
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all orders")
	}

	return toOrderDomainSlice(orderMs), nil
}

// UpdateStatus sets the fulfilment status and, when trackingNumber is
// non-empty, the tracking number.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, trackingNumber string) error {
	updates := map[string]any{
		"status": string(status),
	}
	if trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// UpdatePaymentStatus sets the payment track only.
func (repo *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("payment_status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update payment status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// RecordPaymentResult sets fulfilment status, payment status and the gateway
// transaction id in one write.
func (repo *orderRepository) RecordPaymentResult(ctx context.Context, id uuid.UUID, status entity.OrderStatus, paymentStatus entity.PaymentStatus, paymentID string) error {
	updates := map[string]any{
		"status":         string(status),
		"payment_status": string(paymentStatus),
	}
	if paymentID != "" {
		updates["payment_id"] = paymentID
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to record payment result")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// MarkCancelled sets status=cancelled and records the assessed fee.
func (repo *orderRepository) MarkCancelled(ctx context.Context, id uuid.UUID, cancellationFee float64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           string(entity.OrderStatusCancelled),
			"cancellation_fee": cancellationFee,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark order cancelled")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Quantity:  itemM.Quantity,
			Price:     itemM.Price,
			Product:   toProductDomain(itemM.Product),
		})
	}

	return &entity.Order{
		ID:     data.ID,
		UserID: data.UserID,
		Status: entity.OrderStatus(data.Status),
		ShippingAddress: entity.ShippingAddress{
			Name:       data.ShippingAddress.Name,
			Phone:      data.ShippingAddress.Phone,
			Address:    data.ShippingAddress.Address,
			City:       data.ShippingAddress.City,
			PostalCode: data.ShippingAddress.PostalCode,
		},
		TotalAmount:     data.TotalAmount,
		PaymentMethod:   data.PaymentMethod,
		PaymentStatus:   entity.PaymentStatus(data.PaymentStatus),
		PaymentID:       data.PaymentID,
		TrackingNumber:  data.TrackingNumber,
		CancellationFee: data.CancellationFee,
		Items:           items,
		User:            toUserDomain(data.User),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toOrderDomainSlice(data []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(data))
	for _, orderM := range data {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel for persistence.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return &model.OrderModel{
		ID:     data.ID,
		UserID: data.UserID,
		Status: string(data.Status),
		ShippingAddress: model.ShippingAddressJSON{
			Name:       data.ShippingAddress.Name,
			Phone:      data.ShippingAddress.Phone,
			Address:    data.ShippingAddress.Address,
			City:       data.ShippingAddress.City,
			PostalCode: data.ShippingAddress.PostalCode,
		},
		TotalAmount:     data.TotalAmount,
		PaymentMethod:   data.PaymentMethod,
		PaymentStatus:   string(data.PaymentStatus),
		PaymentID:       data.PaymentID,
		TrackingNumber:  data.TrackingNumber,
		CancellationFee: data.CancellationFee,
		Items:           items,
	}
}
