package handler

import (
	"context"

	"github.com/idsynccam/registration-api/internal/model"
)

// UserStore is the account persistence the auth and user handlers depend
// on.  *repository.UserRepo is the production implementation; lookups
// report a missing row as sql.ErrNoRows and writes use the repository
// sentinel errors.
type UserStore interface {
	Create(ctx context.Context, username, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.PublicUser, error)
	UpdateTokens(ctx context.Context, id uint64, accessHash, refreshHash string) error
	ClearTokens(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) error
}
