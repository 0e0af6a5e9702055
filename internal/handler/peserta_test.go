package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/idsynccam/registration-api/internal/repository"
)

// The repository has no database behind it in these tests; every case must
// be rejected by validation before any query is attempted.
func newPesertaContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestDeletePesertaInvalidID(t *testing.T) {
	h := NewPesertaHandler(&repository.PesertaRepo{})
	cases := []string{"abc", "-1", "1.5", ""}
	for _, id := range cases {
		t.Run("id="+id, func(t *testing.T) {
			c, rec := newPesertaContext(t, "/api/peserta/"+id)
			c.SetParamNames("id")
			c.SetParamValues(id)
			if err := h.DeletePeserta(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestDeletePesertaByMonthRange verifies the month filter is validated
// before the store is touched: a nil database would panic otherwise.
func TestDeletePesertaByMonthRange(t *testing.T) {
	h := NewPesertaHandler(&repository.PesertaRepo{})
	cases := []struct {
		month    string
		wantCode int
		wantBody string
	}{
		{"0", http.StatusBadRequest, "month must be between 1 and 12"},
		{"13", http.StatusBadRequest, "month must be between 1 and 12"},
		{"-2", http.StatusBadRequest, "month must be between 1 and 12"},
		{"abc", http.StatusBadRequest, "invalid month"},
	}
	for _, tc := range cases {
		t.Run("month="+tc.month, func(t *testing.T) {
			c, rec := newPesertaContext(t, "/api/peserta/month/"+tc.month)
			c.SetParamNames("month")
			c.SetParamValues(tc.month)
			if err := h.DeletePesertaByMonth(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body = %s, want %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}
