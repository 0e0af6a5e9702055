package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idsynccam/registration-api/internal/gdrive"
	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/repository"
	"github.com/idsynccam/registration-api/internal/response"
)

// SpreadsheetHandler serves roster previews and drives the spreadsheet
// export pipeline against the Drive/Sheets provider.
type SpreadsheetHandler struct {
	Drive   *gdrive.Service
	Peserta *repository.PesertaRepo
}

func NewSpreadsheetHandler(d *gdrive.Service, p *repository.PesertaRepo) *SpreadsheetHandler {
	return &SpreadsheetHandler{Drive: d, Peserta: p}
}

type createSheetReq struct {
	Title        string `json:"title"`
	GroupByMonth bool   `json:"groupByMonth"`
}

// defaultTitle is used when the request body carries no title.
func defaultTitle() string {
	return "Data Peserta " + time.Now().Format("2006-01-02")
}

// GetPesertaData handles GET /api/spreadsheet/peserta.  Returns the roster
// sorted by birth date; with ?groupByMonth=true the rows are partitioned
// into month groups in first-occurrence order.
func (h *SpreadsheetHandler) GetPesertaData(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Peserta.ListSorted(ctx)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "failed to load peserta")
	}

	if grouped, _ := strconv.ParseBool(c.QueryParam("groupByMonth")); grouped {
		groups := model.GroupByMonth(list)
		return response.Success(c, http.StatusOK, "", echo.Map{
			"totalPeserta": len(list),
			"totalBulan":   len(groups),
			"perBulan":     groups,
		})
	}
	return response.Success(c, http.StatusOK, "", echo.Map{
		"totalPeserta": len(list),
		"peserta":      list,
	})
}

// GetSummary handles GET /api/spreadsheet/summary: roster totals, per-month
// counts and the most frequent origin schools.
func (h *SpreadsheetHandler) GetSummary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Peserta.ListSorted(ctx)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "failed to load peserta")
	}

	groups := model.GroupByMonth(list)
	perBulan := make([]echo.Map, 0, len(groups))
	for _, g := range groups {
		perBulan = append(perBulan, echo.Map{"bulan": g.Bulan, "jumlah": g.Jumlah})
	}
	return response.Success(c, http.StatusOK, "", echo.Map{
		"totalPeserta": len(list),
		"totalBulan":   len(groups),
		"perBulan":     perBulan,
		"topSekolah":   model.TopSchools(list, 5),
	})
}

// CreateSpreadsheet handles POST /api/spreadsheet/create: one spreadsheet,
// one "Data Peserta" sheet with the whole roster.
func (h *SpreadsheetHandler) CreateSpreadsheet(c echo.Context) error {
	return h.create(c, false)
}

// CreateSpreadsheetByMonth handles POST /api/spreadsheet/create-by-month:
// one sheet per distinct birth month.
func (h *SpreadsheetHandler) CreateSpreadsheetByMonth(c echo.Context) error {
	return h.create(c, true)
}

func (h *SpreadsheetHandler) create(c echo.Context, byMonth bool) error {
	var req createSheetReq
	_ = c.Bind(&req) // body is optional
	if req.Title == "" {
		req.Title = defaultTitle()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	list, err := h.Peserta.ListSorted(ctx)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "failed to load peserta")
	}

	roster, err := h.buildRoster(ctx, req.Title, list, byMonth)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "failed to create spreadsheet")
	}
	return response.Success(c, http.StatusCreated, "Spreadsheet berhasil dibuat", roster)
}

func (h *SpreadsheetHandler) buildRoster(ctx context.Context, title string, list []model.PesertaView, byMonth bool) (gdrive.Roster, error) {
	if byMonth {
		return h.Drive.CreateRosterByMonth(ctx, title, list)
	}
	return h.Drive.CreateRoster(ctx, title, list)
}

// DownloadExcel handles GET /api/spreadsheet/download/excel/:spreadsheetId.
func (h *SpreadsheetHandler) DownloadExcel(c echo.Context) error {
	return h.download(c, c.Param("spreadsheetId"), gdrive.ExcelMIME, "xlsx")
}

// DownloadPDF handles GET /api/spreadsheet/download/pdf/:spreadsheetId.
func (h *SpreadsheetHandler) DownloadPDF(c echo.Context) error {
	return h.download(c, c.Param("spreadsheetId"), gdrive.PDFMIME, "pdf")
}

func (h *SpreadsheetHandler) download(c echo.Context, spreadsheetID, mime, ext string) error {
	if spreadsheetID == "" {
		return response.Error(c, http.StatusBadRequest, "spreadsheetId is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	data, err := h.Drive.Export(ctx, spreadsheetID, mime)
	if err != nil {
		return h.exportError(c, err)
	}
	return h.attachment(c, data, mime, fmt.Sprintf("peserta-%s.%s", time.Now().Format("2006-01-02"), ext))
}

// ExportExcel handles POST /api/spreadsheet/export/excel: create a roster
// spreadsheet and stream its Excel rendering in one round trip.
func (h *SpreadsheetHandler) ExportExcel(c echo.Context) error {
	return h.export(c, gdrive.ExcelMIME, "xlsx")
}

// ExportPDF handles POST /api/spreadsheet/export/pdf.
func (h *SpreadsheetHandler) ExportPDF(c echo.Context) error {
	return h.export(c, gdrive.PDFMIME, "pdf")
}

func (h *SpreadsheetHandler) export(c echo.Context, mime, ext string) error {
	var req createSheetReq
	_ = c.Bind(&req)
	if req.Title == "" {
		req.Title = defaultTitle()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 120*time.Second)
	defer cancel()

	list, err := h.Peserta.ListSorted(ctx)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "failed to load peserta")
	}
	roster, err := h.buildRoster(ctx, req.Title, list, req.GroupByMonth)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "failed to create spreadsheet")
	}
	data, err := h.Drive.Export(ctx, roster.SpreadsheetID, mime)
	if err != nil {
		return h.exportError(c, err)
	}
	return h.attachment(c, data, mime, fmt.Sprintf("%s.%s", req.Title, ext))
}

// DeleteSpreadsheet handles DELETE /api/spreadsheet/:spreadsheetId.  Not
// implemented; spreadsheets are managed directly on Drive.
func (h *SpreadsheetHandler) DeleteSpreadsheet(c echo.Context) error {
	return response.Error(c, http.StatusNotImplemented, "spreadsheet deletion is not implemented")
}

// attachment streams a byte buffer as a file download.
func (h *SpreadsheetHandler) attachment(c echo.Context, data []byte, mime, filename string) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, mime)
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	res.Header().Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	return c.Blob(http.StatusOK, mime, data)
}

// exportError maps a provider failure to a 500, unless headers already went
// out, in which case the failure is only logged.
func (h *SpreadsheetHandler) exportError(c echo.Context, err error) error {
	if c.Response().Committed {
		log.Printf("spreadsheet: export failed after response commit: %v", err)
		return nil
	}
	return response.Error(c, http.StatusInternalServerError, "failed to export spreadsheet")
}
