package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"foodstop-server/models"
	"foodstop-server/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyOrder   = errors.New("order must contain at least one item")
	ErrMissingEmail = errors.New("email is required")
	ErrInvalidItem  = errors.New("invalid order item")
	// ErrForbidden doubles as the denial signal for non-admin callers on
	// orders that do not exist, so the response never reveals whether an
	// order id is real.
	ErrForbidden         = errors.New("order not found or not accessible")
	ErrOrderNotFound     = repository.ErrOrderNotFound
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status cannot move backward")
)

// statusRank orders the lifecycle: pending -> preparing -> ready -> delivered.
// Forward skips are allowed, backward transitions are rejected.
var statusRank = map[string]int{
	models.StatusPending:   0,
	models.StatusPreparing: 1,
	models.StatusReady:     2,
	models.StatusDelivered: 3,
}

// Notifier hands an order event to the notification pipeline without
// blocking the request path.
type Notifier interface {
	Enqueue(event Event, order *models.Order)
}

type OrderService struct {
	orders   repository.OrderRepository
	resolver OwnerResolver
	notifier Notifier
	coupon   CouponConfig
}

func NewOrderService(orders repository.OrderRepository, resolver OwnerResolver, notifier Notifier, coupon CouponConfig) *OrderService {
	return &OrderService{orders: orders, resolver: resolver, notifier: notifier, coupon: coupon}
}

// Create runs the submission pipeline: validate, price, reconcile owner,
// persist as pending, then hand the order to the notifier. Notification
// outcome is invisible to the caller; once the insert succeeds the order
// stands.
func (s *OrderService) Create(ctx context.Context, order *models.Order, couponCode string, bodyUserID string, caller *Caller) (*models.Order, error) {
	if len(order.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if order.Email == "" {
		return nil, ErrMissingEmail
	}
	for _, item := range order.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity for %q must be at least 1", ErrInvalidItem, item.Name)
		}
		if item.Unit_price < 0 {
			return nil, fmt.Errorf("%w: price for %q cannot be negative", ErrInvalidItem, item.Name)
		}
	}

	order.Email = strings.ToLower(order.Email)

	pricing := ComputeTotal(order.Items, couponCode, s.coupon)
	order.Total_amount = pricing.Total
	if couponCode != "" {
		order.Coupon = &models.Coupon{
			Is_applied:          pricing.Applied,
			Code:                couponCode,
			Discount_amount:     pricing.Discount,
			Discount_percentage: pricing.Percentage,
		}
	}

	order.User_id = s.resolver.ResolveOwner(ctx, bodyUserID, caller, order.Email)

	order.ID = primitive.NewObjectID()
	order.Order_id = order.ID.Hex()
	order.Status = models.StatusPending
	order.Created_at = time.Now()
	order.Updated_at = order.Created_at

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.Enqueue(EventOrderCreated, order)
	return order, nil
}

// GetByID applies the access gate. Non-admin callers get the same denial for
// a missing order and for someone else's order; admins get a real not-found.
func (s *OrderService) GetByID(ctx context.Context, orderID string, caller *Caller) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			if caller.IsAdmin() {
				return nil, ErrOrderNotFound
			}
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !CanReadOrder(order, caller) {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListForOwner returns the caller's orders: those already linked to the
// account plus any orphans carrying the same email, which are adopted as a
// side effect of listing.
func (s *OrderService) ListForOwner(ctx context.Context, caller *Caller) ([]models.Order, error) {
	if caller == nil {
		return nil, ErrForbidden
	}
	if adopted := s.resolver.AdoptOrphans(ctx, caller.User_id, caller.Email); adopted > 0 {
		log.Printf("linked %d orphaned orders to user %s", adopted, caller.User_id)
	}
	return s.orders.FindByUser(ctx, caller.User_id)
}

func (s *OrderService) ListAll(ctx context.Context, caller *Caller) ([]models.Order, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.orders.FindAll(ctx)
}

// UpdateStatus moves an order along the lifecycle. Admin only. The new value
// is validated against the status enum and must not rank below the current
// status; forward skips are accepted.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, newStatus string, caller *Caller) (*models.Order, error) {
	if !CanWriteStatus(caller) {
		return nil, ErrForbidden
	}
	newRank, ok := statusRank[newStatus]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	current, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if newRank < statusRank[current.Status] {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
	}

	updated, err := s.orders.SetStatus(ctx, orderID, newStatus)
	if err != nil {
		return nil, err
	}

	s.notifier.Enqueue(EventStatusChanged, updated)
	return updated, nil
}
