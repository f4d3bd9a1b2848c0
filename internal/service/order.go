package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// OrderService writes the order, the user's back-reference and each stock
// change as separate statements. A failure part way leaves them out of step,
// and two concurrent orders can both pass the stock check.
type OrderService struct {
	Orders   OrderStore
	Products ProductStore
	Users    UserStore
	Events   Publisher
}

type CreateOrderInput struct {
	Location    models.Location
	Items       []models.OrderItem
	TotalAmount *float64
}

func (s *OrderService) Create(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	loc := models.Location{
		City:    strings.TrimSpace(in.Location.City),
		State:   strings.TrimSpace(in.Location.State),
		Zipcode: strings.TrimSpace(in.Location.Zipcode),
	}
	if loc.City == "" || loc.State == "" || loc.Zipcode == "" {
		return nil, fail(ErrValidation, "Complete shipping address required")
	}
	if len(in.Items) == 0 {
		return nil, fail(ErrValidation, "Order must contain at least one item")
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, fail(ErrValidation, "Invalid item format")
		}
		p, err := s.Products.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, fail(ErrValidation, "Product %s not found", it.ProductID)
			}
			return nil, err
		}
		if p.Stock < it.Quantity {
			return nil, fail(ErrValidation, "Insufficient stock for %s", p.Name)
		}
	}
	if in.TotalAmount == nil || *in.TotalAmount <= 0 {
		return nil, fail(ErrValidation, "Invalid total amount")
	}

	order := &models.Order{
		ID:          uuid.NewString(),
		OrderDate:   time.Now().UTC(),
		Location:    loc,
		Items:       append([]models.OrderItem(nil), in.Items...),
		UserID:      userID,
		Status:      models.OrderStatusPending,
		TotalAmount: *in.TotalAmount,
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := ignoreMissing(s.Users.PushOrder(ctx, userID, order.ID)); err != nil {
		l.Error("order_partial_write", "order_id", order.ID, "step", "link_user", "error", err)
		return nil, err
	}
	for _, it := range order.Items {
		if err := ignoreMissing(s.Products.AdjustStock(ctx, it.ProductID, -it.Quantity)); err != nil {
			l.Error("order_partial_write", "order_id", order.ID, "step", "decrement_stock", "product_id", it.ProductID, "error", err)
			return nil, err
		}
	}

	l.Info("order_created", "order_id", order.ID, "items", len(order.Items))
	publish(ctx, s.Events, events.TopicOrders, orderEvent(events.OrderCreated, order))
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID string) ([]models.OrderView, error) {
	orders, err := s.Orders.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, orders)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.OrderView, error) {
	orders, err := s.Orders.ListOrders(ctx, "")
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, orders)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.OrderView, error) {
	if !models.IsOrderStatus(status) {
		return nil, fail(ErrValidation, "Status must be one of: %s", strings.Join(models.OrderStatuses, ", "))
	}

	order, err := s.Orders.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fail(ErrNotFound, "Order not found")
		}
		return nil, err
	}
	publish(ctx, s.Events, events.TopicOrders, orderEvent(events.OrderStatusUpdated, order))

	views, err := s.expand(ctx, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete restores stock from the order's own snapshot, not the live product.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	l := logging.FromContext(ctx).With("svc", "order.delete", "order_id", id)

	order, err := s.Orders.DeleteOrder(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(ErrNotFound, "Order not found")
		}
		return err
	}

	for _, it := range order.Items {
		if err := ignoreMissing(s.Products.AdjustStock(ctx, it.ProductID, it.Quantity)); err != nil {
			l.Error("order_partial_write", "step", "restore_stock", "product_id", it.ProductID, "error", err)
			return err
		}
	}
	if err := ignoreMissing(s.Users.PullOrder(ctx, order.UserID, order.ID)); err != nil {
		l.Error("order_partial_write", "step", "unlink_user", "error", err)
		return err
	}

	publish(ctx, s.Events, events.TopicOrders, orderEvent(events.OrderDeleted, order))
	return nil
}

// expand attaches each order's user; orders of deleted users get nil.
func (s *OrderService) expand(ctx context.Context, orders []models.Order) ([]models.OrderView, error) {
	ids := make([]string, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.UserID]; !ok {
			seen[o.UserID] = struct{}{}
			ids = append(ids, o.UserID)
		}
	}

	users, err := s.Users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	views := make([]models.OrderView, len(orders))
	for i, o := range orders {
		views[i] = models.OrderView{Order: o, User: byID[o.UserID]}
	}
	return views, nil
}

// ignoreMissing drops not-found from side-effect writes on rows that may
// have been deleted since.
func ignoreMissing(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	return err
}

func orderEvent(typ string, o *models.Order) events.Event {
	return events.New(typ, o.ID, map[string]any{
		"userId":      o.UserID,
		"status":      o.Status,
		"totalAmount": o.TotalAmount,
		"items":       o.Items,
	})
}
