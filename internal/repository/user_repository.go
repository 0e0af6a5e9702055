package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/utils"
)

// UserRepo reads and writes the `users` table, including the per-user token
// hash columns that track the single live session.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,email,password_hash,role,COALESCE(access_token_hash,''),COALESCE(refresh_token_hash,''),created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.AccessTokenHash, &u.RefreshTokenHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create hashes the password and inserts a new user, returning its ID.
// A duplicate email maps the MySQL 1062 error to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, username, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns the client-safe projection of every user.
func (r *UserRepo) List(ctx context.Context) ([]model.PublicUser, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,username,email,role FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PublicUser
	for rows.Next() {
		var u model.PublicUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateTokens stores the hashes of a freshly issued token pair on the user
// row. The previous pair is overwritten, which is what makes rotation and
// single-session revocation immediate.
func (r *UserRepo) UpdateTokens(ctx context.Context, id uint64, accessHash, refreshHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET access_token_hash=?, refresh_token_hash=? WHERE id=?",
		accessHash, refreshHash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and for an unchanged one;
		// distinguish by re-checking existence.
		if _, err := r.GetByID(ctx, id); err == sql.ErrNoRows {
			return ErrUserNotFound
		}
	}
	return nil
}

// ClearTokens removes both stored token hashes unconditionally (logout).
func (r *UserRepo) ClearTokens(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET access_token_hash=NULL, refresh_token_hash=NULL WHERE id=?", id)
	return err
}

// Delete removes a user row. The stored token hashes vanish with the row,
// which implicitly invalidates any live refresh token.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
