package repository

import (
	"context"
	"errors"

	"foodstop-server/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")
)

type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	// FindOrphansByEmail returns orders without an owner whose email matches.
	// With exact=true the stored email must equal the (already lowercased)
	// argument; otherwise a case-insensitive pattern match is used.
	FindOrphansByEmail(ctx context.Context, email string, exact bool) ([]models.Order, error)
	SetOwner(ctx context.Context, orderID string, userID string) error
	SetStatus(ctx context.Context, orderID string, status string) (*models.Order, error)
}

type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	CountByPhone(ctx context.Context, phone string) (int64, error)
	FindAdminsWithToken(ctx context.Context) ([]models.User, error)
	UpdateTokens(ctx context.Context, userID string, token string, refreshToken string) error
	SetNotificationToken(ctx context.Context, userID string, notificationToken string) error
}
