package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/payment"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type callbackService struct {
	decoder   service.CallbackDecoder
	orderRepo repository.OrderRepository
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// CallbackServiceParams holds dependencies for the callback service, injected by Fx.
type CallbackServiceParams struct {
	fx.In

	Decoder   service.CallbackDecoder
	OrderRepo repository.OrderRepository
	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewCallbackService creates a new payment callback service instance.
func NewCallbackService(params CallbackServiceParams) usecase.PaymentCallbackUsecase {
	return &callbackService{
		decoder:   params.Decoder,
		orderRepo: params.OrderRepo,
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

// HandleCallback verifies and applies a gateway notification. A tampered or
// malformed notification is rejected before any order state changes.
func (s *callbackService) HandleCallback(ctx context.Context, fields map[string]string) (*usecase.CallbackResult, error) {
	notification, err := s.decoder.DecodeCallback(fields)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrSignatureMismatch):
			s.logger.WarnContext(ctx, "payment callback rejected: signature mismatch")

			return nil, domainerrors.ErrInvalidSignature
		case errors.Is(err, payment.ErrUnknownCallbackFormat):
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unrecognized callback format")
		default:
			return nil, errors.Wrap(err, "failed to decode payment callback")
		}
	}

	orderID, err := uuid.Parse(notification.OrderID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("callback carries an invalid order id")
	}

	if notification.Succeeded {
		err = s.orderRepo.RecordPaymentResult(ctx, orderID, entity.OrderStatusConfirmed, entity.PaymentStatusCompleted, notification.TransactionID)
	} else {
		err = s.cancelFailedOrder(ctx, orderID, notification.TransactionID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to apply payment callback")
	}

	s.logger.InfoContext(ctx, "payment callback applied",
		slog.String("orderID", orderID.String()),
		slog.Bool("succeeded", notification.Succeeded),
		slog.String("transactionID", notification.TransactionID),
	)

	return &usecase.CallbackResult{
		OrderID:   orderID,
		Succeeded: notification.Succeeded,
		Message:   notification.Message,
	}, nil
}

// cancelFailedOrder cancels the order and returns its reserved stock in one
// transaction. An order that is already cancelled is left alone so a replayed
// failure notification cannot restock twice.
func (s *callbackService) cancelFailedOrder(ctx context.Context, orderID uuid.UUID, transactionID string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil
	}

	return s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.OrderRepo().RecordPaymentResult(ctx, orderID, entity.OrderStatusCancelled, entity.PaymentStatusFailed, transactionID); err != nil {
			return err
		}

		productRepo := repos.ProductRepo()
		for _, item := range order.Items {
			if err := productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
}
