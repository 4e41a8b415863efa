package services

import (
	"context"

	"github.com/yeremiapane/coffee-store/apperrors"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/repositories"
	"github.com/yeremiapane/coffee-store/utils"
	"gorm.io/gorm"
)

var orderPreloads = []string{"OrderDetails", "OrderDetails.OrderDetailStatus"}

type OrderService struct {
	db       *gorm.DB
	orders   *repositories.Repository[models.Order]
	details  *repositories.Repository[models.OrderDetail]
	statuses *repositories.Repository[models.OrderDetailStatus]
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:       db,
		orders:   repositories.New[models.Order](db, "order", orderPreloads...),
		details:  repositories.New[models.OrderDetail](db, "order detail", "OrderDetailStatus"),
		statuses: repositories.New[models.OrderDetailStatus](db, "order detail status"),
	}
}

func (s *OrderService) ViewAllOrders(ctx context.Context) ([]models.Order, error) {
	return nonEmpty(s.orders.GetAll(ctx))
}

// ViewAllActiveOrders returns orders that are neither completed nor cancelled.
func (s *OrderService) ViewAllActiveOrders(ctx context.Context) ([]models.Order, error) {
	return nonEmpty(s.orders.Find(ctx, "status NOT IN ?", models.TerminalStatuses))
}

func (s *OrderService) ViewAllMyOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return nonEmpty(s.orders.Find(ctx, "user_id = ?", userID))
}

func (s *OrderService) ViewMyActiveOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return nonEmpty(s.orders.Find(ctx, "user_id = ? AND status NOT IN ?", userID, models.TerminalStatuses))
}

// UpdateOrderDetail sets the status of one order detail and recomputes the
// status of its order. Nothing is written when the detail does not exist.
func (s *OrderService) UpdateOrderDetail(ctx context.Context, orderDetailID uint, status string, updatedBy uint) (*models.OrderDetail, error) {
	if !models.IsOrderStatus(status) {
		return nil, apperrors.Validation("unknown order status %q", status)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		detail, err := s.details.WithTx(tx).Get(ctx, orderDetailID)
		if err != nil {
			return err
		}

		statuses := s.statuses.WithTx(tx)
		if detail.OrderDetailStatus == nil {
			row := &models.OrderDetailStatus{OrderDetailID: detail.ID, Status: status, UpdatedByID: &updatedBy}
			if _, err := statuses.Add(ctx, row); err != nil {
				return err
			}
		} else {
			row := detail.OrderDetailStatus
			row.Status = status
			row.UpdatedByID = &updatedBy
			if _, err := statuses.Update(ctx, row); err != nil {
				return err
			}
		}

		orders := s.orders.WithTx(tx)
		order, err := orders.Get(ctx, detail.OrderID)
		if err != nil {
			return err
		}
		previous := order.Status
		order.Status = models.AggregateStatus(order.DetailStatuses())
		if order.Status == previous {
			return nil
		}
		if _, err := orders.Update(ctx, order); err != nil {
			return err
		}
		utils.InfoLogger.Printf("Order %d moved from %s to %s", order.ID, previous, order.Status)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.details.Get(ctx, orderDetailID)
}

func nonEmpty(orders []models.Order, err error) ([]models.Order, error) {
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.EmptyList("orders")
	}
	return orders, nil
}
