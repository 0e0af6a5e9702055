// Package handler defines HTTP handlers for the registration API.  This
// file implements the participant record endpoints: a single-row read and
// deletes of single rows, whole birth months (across all years) and the
// full table.  Appropriate status codes are returned when rows are missing
// or the month filter is out of range.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idsynccam/registration-api/internal/repository"
	"github.com/idsynccam/registration-api/internal/response"
)

// PesertaHandler bundles the participant repository for delete endpoints.
type PesertaHandler struct {
	Peserta *repository.PesertaRepo
}

func NewPesertaHandler(p *repository.PesertaRepo) *PesertaHandler {
	return &PesertaHandler{Peserta: p}
}

// GetPeserta handles GET /api/peserta/:id.  Returns the record with its
// derived month name and day.
func (h *PesertaHandler) GetPeserta(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Peserta.GetByID(ctx, id)
	if err != nil {
		switch err {
		case repository.ErrPesertaNotFound:
			return response.Error(c, http.StatusNotFound, "Peserta not found")
		default:
			return response.Error(c, http.StatusInternalServerError, "query failed")
		}
	}
	return response.Success(c, http.StatusOK, "", p)
}

// DeletePeserta handles DELETE /api/peserta/:id.  Returns 404 when the id
// does not exist; a repeated delete of the same id therefore 404s.
func (h *PesertaHandler) DeletePeserta(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Peserta.DeleteByID(ctx, id); err != nil {
		switch err {
		case repository.ErrPesertaNotFound:
			return response.Error(c, http.StatusNotFound, "Peserta not found")
		default:
			return response.Error(c, http.StatusInternalServerError, "delete failed")
		}
	}
	return response.Success(c, http.StatusOK, "Peserta berhasil dihapus", nil)
}

// DeletePesertaByMonth handles DELETE /api/peserta/month/:month.  The month
// number is validated before the store is touched; deletion matches the
// birth month across all years.
func (h *PesertaHandler) DeletePesertaByMonth(c echo.Context) error {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid month")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	name, count, err := h.Peserta.DeleteByMonth(ctx, month)
	if err != nil {
		switch err {
		case repository.ErrInvalidMonth:
			return response.Error(c, http.StatusBadRequest, "month must be between 1 and 12")
		default:
			return response.Error(c, http.StatusInternalServerError, "delete failed")
		}
	}
	return response.Success(c, http.StatusOK,
		fmt.Sprintf("Semua peserta bulan %s berhasil dihapus", name),
		echo.Map{"bulan": name, "deletedCount": count})
}

// DeleteAllPeserta handles DELETE /api/peserta/delete.  Unconditional bulk
// delete of the whole registry.
func (h *PesertaHandler) DeleteAllPeserta(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	count, err := h.Peserta.DeleteAll(ctx)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "delete failed")
	}
	return response.Success(c, http.StatusOK, "Semua peserta berhasil dihapus",
		echo.Map{"deletedCount": count})
}
