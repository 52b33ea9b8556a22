package auth

import (
	"context"

	"servicehub/internal/domain"
)

// UserRepositoryInterface lists the repository methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User, provider *domain.Provider) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
