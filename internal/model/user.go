package model

import "time"

// Roles recognized by the authorization layer.  The role column is an enum
// of exactly these two values.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account record as stored in the `users` table.  Token
// columns hold SHA-256 hashes of the most recently issued access and refresh
// tokens; the service tracks a single live session per user, so a newly
// issued pair supersedes the previous one and logout clears both.
//
// Fields:
//  ID               – primary key identifier of the user.
//  Username         – display name.
//  Email            – unique email address.
//  PasswordHash     – bcrypt hashed password.
//  Role             – USER or ADMIN.
//  AccessTokenHash  – hash of the current access token (empty when logged out).
//  RefreshTokenHash – hash of the current refresh token (empty when logged out).
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type User struct {
	ID               uint64    // users.id
	Username         string    // users.username
	Email            string    // users.email
	PasswordHash     string    // users.password_hash
	Role             string    // users.role
	AccessTokenHash  string    // users.access_token_hash (nullable)
	RefreshTokenHash string    // users.refresh_token_hash (nullable)
	CreatedAt        time.Time // users.created_at
	UpdatedAt        time.Time // users.updated_at
}

// PublicUser is the projection of a user that is safe to return to clients.
// Password and token columns never leave the repository layer.
type PublicUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"userName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Public returns the client-safe projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
