package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idsynccam/registration-api/internal/config"
	"github.com/idsynccam/registration-api/internal/middleware"
	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/repository"
	"github.com/idsynccam/registration-api/internal/utils"
)

func TestLoginValidation(t *testing.T) {
	h := NewAuthHandler(config.Config{}, &repository.UserRepo{})
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"email":"a@b.c"}`},
		{"missing email", `{"password":"p"}`},
		{"whitespace email", `{"email":"   ","password":"p"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			if err := h.Login(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestCookieFor checks the environment split: Lax for local development,
// Secure + SameSite=None everywhere else.
func TestCookieFor(t *testing.T) {
	exp := time.Now().Add(time.Hour)

	dev := NewAuthHandler(config.Config{Env: "dev"}, nil)
	ck := dev.cookieFor(middleware.AccessCookie, "tok", exp)
	if !ck.HttpOnly {
		t.Error("cookie is not httpOnly")
	}
	if ck.Secure || ck.SameSite != http.SameSiteLaxMode {
		t.Errorf("dev cookie = secure:%v samesite:%v, want insecure Lax", ck.Secure, ck.SameSite)
	}

	prod := NewAuthHandler(config.Config{Env: "prod"}, nil)
	ck = prod.cookieFor(middleware.RefreshCookie, "tok", exp)
	if !ck.Secure || ck.SameSite != http.SameSiteNoneMode {
		t.Errorf("prod cookie = secure:%v samesite:%v, want Secure None", ck.Secure, ck.SameSite)
	}
}

// TestSetAndClearAuthCookies verifies both cookie slots are written on
// login and expired on logout.
func TestSetAndClearAuthCookies(t *testing.T) {
	h := NewAuthHandler(config.Config{Env: "dev"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	access := utils.SignedToken{Token: "acc", Exp: time.Now().Add(15 * time.Minute)}
	refresh := utils.SignedToken{Token: "ref", Exp: time.Now().Add(7 * 24 * time.Hour)}
	h.setAuthCookies(c, access, refresh)

	cookies := rec.Result().Cookies()
	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}
	if ck := byName[middleware.AccessCookie]; ck == nil || ck.Value != "acc" {
		t.Errorf("access cookie = %+v, want value acc", ck)
	}
	if ck := byName[middleware.RefreshCookie]; ck == nil || ck.Value != "ref" {
		t.Errorf("refresh cookie = %+v, want value ref", ck)
	}

	rec2 := httptest.NewRecorder()
	c2 := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec2)
	h.clearAuthCookies(c2)
	for _, ck := range rec2.Result().Cookies() {
		if ck.Value != "" || ck.Expires.After(time.Now()) {
			t.Errorf("cookie %s not cleared: %+v", ck.Name, ck)
		}
	}
}

// TestRefreshRotatesStoredHash runs a refresh through the gate and handler
// together, then proves rotation: the superseded token is rejected with
// INVALID_REFRESH_TOKEN while the newly issued cookie token still passes.
func TestRefreshRotatesStoredHash(t *testing.T) {
	const secret = "refresh-secret"
	store := newFakeUserStore()
	u := store.add(model.User{Username: "budi", Email: "budi@example.com", Role: model.RoleUser})

	// The pre-rotation token uses a TTL different from the handler's so the
	// two serialized tokens differ even when signed within the same second.
	old, err := utils.NewRefreshToken(secret, utils.Claims{ID: u.ID, Email: u.Email, Username: u.Username, Role: u.Role}, 7)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if err := store.UpdateTokens(context.Background(), u.ID, "", utils.HashToken(old.Token)); err != nil {
		t.Fatalf("seed hash: %v", err)
	}

	cfg := config.Config{
		Env:            "dev",
		AccessSecret:   "access-secret",
		RefreshSecret:  secret,
		AccessTTLMin:   15,
		RefreshTTLDays: 14,
	}
	h := NewAuthHandler(cfg, store)
	gate := middleware.VerifyRefresh(secret, store)

	refreshWith := func(t *testing.T, token string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: token})
		rec := httptest.NewRecorder()
		if err := gate(handler)(echo.New().NewContext(req, rec)); err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return rec
	}
	noop := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	rec := refreshWith(t, old.Token, h.Refresh)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var rotated string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.RefreshCookie {
			rotated = ck.Value
		}
	}
	if rotated == "" || rotated == old.Token {
		t.Fatalf("rotated cookie token = %q, want a fresh token", rotated)
	}

	if rec := refreshWith(t, old.Token, noop); rec.Code != http.StatusUnauthorized ||
		!strings.Contains(rec.Body.String(), "INVALID_REFRESH_TOKEN") {
		t.Errorf("superseded token: status = %d body = %s, want 401 INVALID_REFRESH_TOKEN", rec.Code, rec.Body.String())
	}
	if rec := refreshWith(t, rotated, noop); rec.Code != http.StatusOK {
		t.Errorf("rotated token: status = %d, want 200", rec.Code)
	}
}

// TestLogoutRequiresClaims verifies logout refuses to run when the access
// gate has not attached an identity.
func TestLogoutRequiresClaims(t *testing.T) {
	h := NewAuthHandler(config.Config{}, &repository.UserRepo{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHasCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookie, Value: "x"})
	req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: ""})
	c := echo.New().NewContext(req, httptest.NewRecorder())

	if !hasCookie(c, middleware.AccessCookie) {
		t.Error("hasCookie missed a present cookie")
	}
	if hasCookie(c, middleware.RefreshCookie) {
		t.Error("hasCookie accepted an empty cookie value")
	}
	if hasCookie(c, "other") {
		t.Error("hasCookie accepted an absent cookie")
	}
}
