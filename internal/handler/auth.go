package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // sentinel errors such as sql.ErrNoRows
	"net/http"     // HTTP status codes and cookie primitives
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls and cookie lifetimes

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/idsynccam/registration-api/internal/config"
	"github.com/idsynccam/registration-api/internal/middleware"
	"github.com/idsynccam/registration-api/internal/response"
	"github.com/idsynccam/registration-api/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	User         interface{} `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type tokenPairResp struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// issuePair signs a fresh access+refresh pair for the user and persists
// both hashes on the user row, superseding any previous session.
func (h *AuthHandler) issuePair(ctx context.Context, id uint64, email, username, role string) (access, refresh utils.SignedToken, err error) {
	claims := utils.Claims{ID: id, Email: email, Username: username, Role: role}
	access, err = utils.NewAccessToken(h.Cfg.AccessSecret, claims, h.Cfg.AccessTTLMin)
	if err != nil {
		return
	}
	refresh, err = utils.NewRefreshToken(h.Cfg.RefreshSecret, claims, h.Cfg.RefreshTTLDays)
	if err != nil {
		return
	}
	err = h.Users.UpdateTokens(ctx, id, utils.HashToken(access.Token), utils.HashToken(refresh.Token))
	return
}

// Login authenticates mobile/API clients and returns the token pair in the
// response body.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return response.Error(c, http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return response.Error(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return response.Error(c, http.StatusInternalServerError, "query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return response.Error(c, http.StatusUnauthorized, "Invalid email or password")
	}

	access, refresh, err := h.issuePair(ctx, u.ID, u.Email, u.Username, u.Role)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "issue tokens failed")
	}

	return response.Success(c, http.StatusOK, "Login successful", loginResp{
		User:         u.Public(),
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
	})
}

// LoginWeb authenticates browser clients: the token pair is delivered in
// httpOnly cookies and only the safe user projection appears in the body.
func (h *AuthHandler) LoginWeb(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return response.Error(c, http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return response.Error(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return response.Error(c, http.StatusInternalServerError, "query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return response.Error(c, http.StatusUnauthorized, "Invalid email or password")
	}

	access, refresh, err := h.issuePair(ctx, u.ID, u.Email, u.Username, u.Role)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "issue tokens failed")
	}

	h.setAuthCookies(c, access, refresh)
	return response.Success(c, http.StatusOK, "Login successful", echo.Map{"user": u.Public()})
}

// Logout clears the stored token pair unconditionally and, for web clients,
// expires the auth cookies.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "Authentication required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Users.ClearTokens(ctx, claims.ID); err != nil {
		return response.Error(c, http.StatusInternalServerError, "logout failed")
	}

	if hasCookie(c, middleware.AccessCookie) || hasCookie(c, middleware.RefreshCookie) {
		h.clearAuthCookies(c)
	}
	return response.Success(c, http.StatusOK, "Logout successful", nil)
}

// Refresh rotates the token pair: a new access token is issued and the
// refresh token is replaced as well, so the presented refresh token is
// permanently invalid afterward even though it has not expired.  Web
// clients receive the new pair in cookies; mobile clients in the body.
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "Authentication required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Reload the user so a role or username change since issuance is
	// reflected in the new tokens.
	u, err := h.Users.GetByID(ctx, claims.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return response.ErrorCode(c, http.StatusUnauthorized, "User not found", "USER_NOT_FOUND")
		}
		return response.Error(c, http.StatusInternalServerError, "load user failed")
	}

	access, refresh, err := h.issuePair(ctx, u.ID, u.Email, u.Username, u.Role)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "issue tokens failed")
	}

	if hasCookie(c, middleware.RefreshCookie) {
		h.setAuthCookies(c, access, refresh)
		return response.Success(c, http.StatusOK, "Token refreshed successfully", nil)
	}
	return response.Success(c, http.StatusOK, "Token refreshed successfully", tokenPairResp{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
	})
}

// ----- cookie helpers -----

func hasCookie(c echo.Context, name string) bool {
	ck, err := c.Cookie(name)
	return err == nil && ck.Value != ""
}

// cookieFor builds an httpOnly auth cookie.  Outside dev the cookies are
// Secure with SameSite=None so the hosted dashboard origin can send them.
func (h *AuthHandler) cookieFor(name, value string, exp time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
	}
	if h.Cfg.Env == "dev" {
		ck.SameSite = http.SameSiteLaxMode
	} else {
		ck.Secure = true
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}

func (h *AuthHandler) setAuthCookies(c echo.Context, access, refresh utils.SignedToken) {
	c.SetCookie(h.cookieFor(middleware.AccessCookie, access.Token, access.Exp))
	c.SetCookie(h.cookieFor(middleware.RefreshCookie, refresh.Token, refresh.Exp))
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	past := time.Unix(0, 0)
	c.SetCookie(h.cookieFor(middleware.AccessCookie, "", past))
	c.SetCookie(h.cookieFor(middleware.RefreshCookie, "", past))
}
