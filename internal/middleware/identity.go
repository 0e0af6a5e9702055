package middleware

// identity.go defines helpers shared across middleware and handlers for
// reading the authenticated identity out of the Echo context after the
// authentication gate has run.

import (
	"github.com/labstack/echo/v4"

	"github.com/idsynccam/registration-api/internal/utils"
)

// CurrentClaims returns the verified token claims attached by VerifyAccess
// or VerifyRefresh, or false when the request is unauthenticated.
func CurrentClaims(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*utils.Claims)
	return claims, ok
}
