package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"  // context with timeout bounds the directory lookup
	"database/sql"
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming
	"time"

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/response"
	"github.com/idsynccam/registration-api/internal/utils"
)

// UserDirectory is the lookup the authentication gates need to cross-check
// a token's subject against the user table.  A missing user is reported as
// sql.ErrNoRows, matching the repository behavior.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Cookie slots checked before the Authorization header.  Web clients carry
// tokens in httpOnly cookies; mobile clients send a Bearer header.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// ClaimsKey is the context key under which verified token claims are stored
// for downstream handlers.
const ClaimsKey = "user"

// extractToken pulls a token from the named cookie first and falls back to
// an "Authorization: Bearer <token>" header.  It returns an empty string
// when neither carries a token.
func extractToken(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// VerifyAccess returns a middleware that authenticates requests with an
// access token.  The token is extracted (cookie, then bearer), verified
// against the access secret and cross-checked against the user directory:
// the user must still exist, but the presented token is not compared with
// the stored hash, so a not-yet-expired token keeps working until its
// expiry even after a newer login.  On success the decoded claims are
// attached to the request context.
func VerifyAccess(secret string, users UserDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c, AccessCookie)
			if raw == "" {
				return response.ErrorCode(c, http.StatusUnauthorized, "Access token is required", "NO_TOKEN")
			}
			claims, err := utils.VerifyToken(raw, secret)
			if err != nil {
				if err == utils.ErrTokenExpired {
					return response.ErrorCode(c, http.StatusUnauthorized, "Access token has expired", "TOKEN_EXPIRED")
				}
				return response.ErrorCode(c, http.StatusUnauthorized, "Invalid token signature", "INVALID_SIGNATURE")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			if _, err := users.GetByID(ctx, claims.ID); err != nil {
				if err == sql.ErrNoRows {
					return response.ErrorCode(c, http.StatusUnauthorized, "User not found", "USER_NOT_FOUND")
				}
				return response.Error(c, http.StatusInternalServerError, "Authentication error")
			}

			c.Set(ClaimsKey, claims)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

// VerifyRefresh returns a middleware that authenticates requests with a
// refresh token.  Beyond signature and expiry checks, the presented token
// must match the refresh token stored server-side for the user (compared as
// SHA-256 hashes).  This equality check is what makes rotation effective:
// once a refresh rotates or a logout clears the stored value, every
// previously issued refresh token is rejected immediately.
func VerifyRefresh(secret string, users UserDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c, RefreshCookie)
			if raw == "" {
				return response.ErrorCode(c, http.StatusUnauthorized, "Refresh token is required", "NO_REFRESH_TOKEN")
			}
			claims, err := utils.VerifyToken(raw, secret)
			if err != nil {
				if err == utils.ErrTokenExpired {
					return response.ErrorCode(c, http.StatusUnauthorized, "Refresh token has expired", "REFRESH_TOKEN_EXPIRED")
				}
				return response.ErrorCode(c, http.StatusUnauthorized, "Invalid refresh token signature", "INVALID_REFRESH_SIGNATURE")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByID(ctx, claims.ID)
			if err != nil {
				if err == sql.ErrNoRows {
					return response.ErrorCode(c, http.StatusUnauthorized, "User not found", "USER_NOT_FOUND")
				}
				return response.Error(c, http.StatusInternalServerError, "Authentication error")
			}
			if u.RefreshTokenHash == "" || u.RefreshTokenHash != utils.HashToken(raw) {
				return response.ErrorCode(c, http.StatusUnauthorized, "Invalid or expired refresh token", "INVALID_REFRESH_TOKEN")
			}

			c.Set(ClaimsKey, claims)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
