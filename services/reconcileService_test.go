package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodstop-server/models"
	"foodstop-server/repository"
	"foodstop-server/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userWithID(id string) func(ctx context.Context, userID string) (*models.User, error) {
	return func(ctx context.Context, userID string) (*models.User, error) {
		if userID == id {
			return &models.User{User_id: id}, nil
		}
		return nil, repository.ErrUserNotFound
	}
}

func TestResolveOwnerPriority(t *testing.T) {
	ctx := context.Background()

	t.Run("body_user_id_beats_authenticated_caller", func(t *testing.T) {
		users := &mockUserRepo{
			findByIDFunc: func(ctx context.Context, userID string) (*models.User, error) {
				return &models.User{User_id: userID}, nil
			},
		}
		svc := services.NewReconcileService(users, &mockOrderRepo{})

		caller := &services.Caller{User_id: "caller-id", Email: "caller@example.com"}
		owner := svc.ResolveOwner(ctx, "body-id", caller, "order@example.com")

		require.NotNil(t, owner)
		assert.Equal(t, "body-id", *owner)
	})

	t.Run("caller_beats_email_lookup", func(t *testing.T) {
		users := &mockUserRepo{
			findByIDFunc: userWithID("caller-id"),
			findByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return &models.User{User_id: "email-id"}, nil
			},
		}
		svc := services.NewReconcileService(users, &mockOrderRepo{})

		caller := &services.Caller{User_id: "caller-id", Email: "caller@example.com"}
		owner := svc.ResolveOwner(ctx, "", caller, "order@example.com")

		require.NotNil(t, owner)
		assert.Equal(t, "caller-id", *owner)
	})

	t.Run("email_lookup_is_lowercased", func(t *testing.T) {
		var lookedUp string
		users := &mockUserRepo{
			findByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				lookedUp = email
				return &models.User{User_id: "email-id"}, nil
			},
		}
		svc := services.NewReconcileService(users, &mockOrderRepo{})

		owner := svc.ResolveOwner(ctx, "", nil, "Guest@Example.COM")

		require.NotNil(t, owner)
		assert.Equal(t, "email-id", *owner)
		assert.Equal(t, "guest@example.com", lookedUp)
	})

	t.Run("unresolvable_order_stays_orphaned", func(t *testing.T) {
		svc := services.NewReconcileService(&mockUserRepo{}, &mockOrderRepo{})
		owner := svc.ResolveOwner(ctx, "ghost", &services.Caller{User_id: "ghost2"}, "nobody@example.com")
		assert.Nil(t, owner)
	})
}

func TestAdoptOrphans(t *testing.T) {
	ctx := context.Background()

	seed := func(repo *memoryOrderRepo, id, email string, owner *string) {
		repo.Insert(ctx, &models.Order{
			Order_id:   id,
			Email:      email,
			User_id:    owner,
			Status:     models.StatusPending,
			Created_at: time.Now(),
		})
	}

	t.Run("links_exact_matches", func(t *testing.T) {
		orders := newMemoryOrderRepo()
		seed(orders, "o1", "guest@example.com", nil)
		seed(orders, "o2", "guest@example.com", nil)
		seed(orders, "o3", "other@example.com", nil)
		svc := services.NewReconcileService(&mockUserRepo{}, orders)

		adopted := svc.AdoptOrphans(ctx, "u1", "Guest@Example.com")
		assert.Equal(t, 2, adopted)

		owned, err := orders.FindByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, owned, 2)
	})

	t.Run("falls_back_to_case_insensitive_match", func(t *testing.T) {
		orders := newMemoryOrderRepo()
		// Legacy record persisted before emails were normalized.
		seed(orders, "o1", "Guest@Example.com", nil)
		svc := services.NewReconcileService(&mockUserRepo{}, orders)

		adopted := svc.AdoptOrphans(ctx, "u1", "guest@example.com")
		assert.Equal(t, 1, adopted)
	})

	t.Run("second_run_links_nothing", func(t *testing.T) {
		orders := newMemoryOrderRepo()
		seed(orders, "o1", "guest@example.com", nil)
		svc := services.NewReconcileService(&mockUserRepo{}, orders)

		assert.Equal(t, 1, svc.AdoptOrphans(ctx, "u1", "guest@example.com"))
		assert.Equal(t, 0, svc.AdoptOrphans(ctx, "u1", "guest@example.com"))
	})

	t.Run("failed_link_is_skipped_not_fatal", func(t *testing.T) {
		orders := &mockOrderRepo{
			findOrphansFunc: func(ctx context.Context, email string, exact bool) ([]models.Order, error) {
				return []models.Order{{Order_id: "bad"}, {Order_id: "good"}}, nil
			},
			setOwnerFunc: func(ctx context.Context, orderID, userID string) error {
				if orderID == "bad" {
					return errors.New("write failed")
				}
				return nil
			},
		}
		svc := services.NewReconcileService(&mockUserRepo{}, orders)

		adopted := svc.AdoptOrphans(ctx, "u1", "guest@example.com")
		assert.Equal(t, 1, adopted)
	})

	t.Run("lookup_failure_returns_zero", func(t *testing.T) {
		orders := &mockOrderRepo{
			findOrphansFunc: func(ctx context.Context, email string, exact bool) ([]models.Order, error) {
				return nil, errors.New("db down")
			},
		}
		svc := services.NewReconcileService(&mockUserRepo{}, orders)
		assert.Equal(t, 0, svc.AdoptOrphans(ctx, "u1", "guest@example.com"))
	})
}
