package services

import (
	"context"
	"log"
	"strings"

	"foodstop-server/repository"
)

// OwnerResolver links orders to accounts, at creation time and retroactively
// at login.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, bodyUserID string, caller *Caller, email string) *string
	AdoptOrphans(ctx context.Context, userID string, email string) int
}

type ReconcileService struct {
	users  repository.UserRepository
	orders repository.OrderRepository
}

func NewReconcileService(users repository.UserRepository, orders repository.OrderRepository) *ReconcileService {
	return &ReconcileService{users: users, orders: orders}
}

// ResolveOwner picks the account an incoming order belongs to. Strategies in
// strict priority order, first hit wins: the user id supplied in the request
// body, the authenticated caller, then a lookup by the order's email. Returns
// nil when no account matches; the order stays orphaned but valid.
func (s *ReconcileService) ResolveOwner(ctx context.Context, bodyUserID string, caller *Caller, email string) *string {
	if bodyUserID != "" {
		if user, err := s.users.FindByID(ctx, bodyUserID); err == nil {
			return &user.User_id
		}
	}
	if caller != nil && caller.User_id != "" {
		if user, err := s.users.FindByID(ctx, caller.User_id); err == nil {
			return &user.User_id
		}
	}
	if email != "" {
		if user, err := s.users.FindByEmail(ctx, strings.ToLower(email)); err == nil {
			return &user.User_id
		}
	}
	return nil
}

// AdoptOrphans claims unowned orders for the account logging in. A first pass
// matches the normalized email exactly; only if it finds nothing, a
// case-insensitive pattern pass runs. Each link is best-effort: a failed
// update is logged and skipped, never aborting the login flow. Returns the
// number of orders linked.
func (s *ReconcileService) AdoptOrphans(ctx context.Context, userID string, email string) int {
	normalized := strings.ToLower(email)

	orphans, err := s.orders.FindOrphansByEmail(ctx, normalized, true)
	if err != nil {
		log.Printf("orphan lookup failed for %s: %v", normalized, err)
		return 0
	}
	if len(orphans) == 0 {
		orphans, err = s.orders.FindOrphansByEmail(ctx, normalized, false)
		if err != nil {
			log.Printf("orphan pattern lookup failed for %s: %v", normalized, err)
			return 0
		}
	}

	adopted := 0
	for _, order := range orphans {
		if err := s.orders.SetOwner(ctx, order.Order_id, userID); err != nil {
			log.Printf("failed to link order %s to user %s: %v", order.Order_id, userID, err)
			continue
		}
		adopted++
	}
	return adopted
}
