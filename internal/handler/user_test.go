package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/idsynccam/registration-api/internal/config"
	"github.com/idsynccam/registration-api/internal/repository"
)

// TestCreateUserValidation covers the rejections that happen before the
// insert is attempted; the repository has no database behind it.
func TestCreateUserValidation(t *testing.T) {
	h := NewUserHandler(config.Config{BcryptCost: 4}, &repository.UserRepo{})

	cases := []struct {
		name     string
		body     string
		wantBody string
	}{
		{"missing username", `{"email":"a@b.c","password":"longenough"}`, "userName and email are required"},
		{"missing email", `{"userName":"a","password":"longenough"}`, "userName and email are required"},
		{"invalid email", `{"userName":"a","email":"not-an-email","password":"longenough"}`, "email is not valid"},
		{"short password", `{"userName":"a","email":"a@b.c","password":"short"}`, "at least 8 characters"},
		{"malformed json", `{`, "invalid body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/create-user", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			if err := h.CreateUser(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body = %s, want %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

// TestCreateUserDuplicateEmail verifies the unique-email contract: the first
// insert succeeds, a second insert with the same address maps to 409, and
// exactly one row ends up stored.
func TestCreateUserDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	h := NewUserHandler(config.Config{BcryptCost: 4}, store)

	post := func(t *testing.T) *httptest.ResponseRecorder {
		t.Helper()
		body := `{"userName":"budi","email":"budi@example.com","password":"longenough"}`
		req := httptest.NewRequest(http.MethodPost, "/api/create-user", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		if err := h.CreateUser(echo.New().NewContext(req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		return rec
	}

	if rec := post(t); rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	rec := post(t)
	if rec.Code != http.StatusConflict {
		t.Errorf("second create status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User already existing") {
		t.Errorf("body = %s, want duplicate-email message", rec.Body.String())
	}
	if len(store.users) != 1 {
		t.Errorf("stored rows = %d, want 1", len(store.users))
	}
}

func TestDeleteUserInvalidID(t *testing.T) {
	h := NewUserHandler(config.Config{}, &repository.UserRepo{})
	req := httptest.NewRequest(http.MethodDelete, "/api/users/abc", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestDeleteMeUnauthenticated verifies the self-delete endpoint refuses to
// run without claims in the context.
func TestDeleteMeUnauthenticated(t *testing.T) {
	h := NewUserHandler(config.Config{}, &repository.UserRepo{})
	req := httptest.NewRequest(http.MethodDelete, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.DeleteMe(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestDeleteSpreadsheetNotImplemented pins the 501 contract.
func TestDeleteSpreadsheetNotImplemented(t *testing.T) {
	h := NewSpreadsheetHandler(nil, &repository.PesertaRepo{})
	req := httptest.NewRequest(http.MethodDelete, "/api/spreadsheet/sheet123", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("spreadsheetId")
	c.SetParamValues("sheet123")

	if err := h.DeleteSpreadsheet(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}
