package auth

import (
	"context"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
)

// UserRepository holds only the methods the auth service uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
