package repo

import (
	"context"
	"errors"

	"github.com/teran1416/InventarioApp/internal/models"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}

var ErrUserNotFound = errors.New("user not found")
