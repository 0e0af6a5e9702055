package handler

import (
	"context"
	"database/sql"

	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/repository"
	"github.com/idsynccam/registration-api/internal/utils"
)

// fakeUserStore is an in-memory UserStore mirroring the repository's error
// contract: sql.ErrNoRows on missing lookups, sentinel errors on writes.
type fakeUserStore struct {
	users  map[uint64]model.User
	emails map[string]uint64
	nextID uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[uint64]model.User),
		emails: make(map[string]uint64),
		nextID: 1,
	}
}

func (f *fakeUserStore) add(u model.User) model.User {
	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	}
	f.users[u.ID] = u
	f.emails[u.Email] = u.ID
	return u
}

func (f *fakeUserStore) Create(_ context.Context, username, email, password, role string, cost int) (uint64, error) {
	if _, ok := f.emails[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	u := f.add(model.User{Username: username, Email: email, PasswordHash: hash, Role: role})
	return u.ID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	id, ok := f.emails[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return f.users[id], nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.PublicUser, error) {
	out := make([]model.PublicUser, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (f *fakeUserStore) UpdateTokens(_ context.Context, id uint64, accessHash, refreshHash string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.AccessTokenHash = accessHash
	u.RefreshTokenHash = refreshHash
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) ClearTokens(_ context.Context, id uint64) error {
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	u.AccessTokenHash = ""
	u.RefreshTokenHash = ""
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uint64) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	delete(f.emails, u.Email)
	delete(f.users, id)
	return nil
}
