package gdrive

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/utils"
)

// Roster is the result of a spreadsheet build: the provider-assigned ID used
// for later export calls and the URL shown to operators.
type Roster struct {
	SpreadsheetID  string `json:"spreadsheetId"`
	SpreadsheetURL string `json:"spreadsheetUrl"`
}

var errNoSpreadsheet = errors.New("spreadsheet created without id or url")

// singleSheetTitle names the only worksheet of a full-roster spreadsheet.
const singleSheetTitle = "Data Peserta"

// rosterHeader returns the header row.  The month column is omitted on
// per-month sheets because the sheet name already carries it.
func rosterHeader(withMonth bool) []interface{} {
	if withMonth {
		return []interface{}{"No", "Nama Lengkap", "Asal Sekolah", "Tanggal Lahir", "Bulan", "Usia"}
	}
	return []interface{}{"No", "Nama Lengkap", "Asal Sekolah", "Tanggal Lahir", "Usia"}
}

// rosterValues renders header plus one row per participant.  Sequence
// numbers restart at 1 for every sheet.
func rosterValues(data []model.PesertaView, withMonth bool) [][]interface{} {
	values := [][]interface{}{rosterHeader(withMonth)}
	for i, p := range data {
		row := []interface{}{i + 1, p.FullName, p.AsalSekolah, utils.FormatTanggalLahir(p.TglLahir)}
		if withMonth {
			row = append(row, p.Bulan)
		}
		row = append(row, p.Usia)
		values = append(values, row)
	}
	return values
}

// headerFormatRequests styles a sheet's header row (blue background, bold
// white centered text) and auto-resizes the first cols columns.
func headerFormatRequests(sheetID int64, cols int64) []*sheets.Request {
	return []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{SheetId: sheetID, StartRowIndex: 0, EndRowIndex: 1},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: &sheets.Color{Red: 0.2, Green: 0.6, Blue: 0.86},
						TextFormat: &sheets.TextFormat{
							Bold:            true,
							ForegroundColor: &sheets.Color{Red: 1, Green: 1, Blue: 1},
						},
						HorizontalAlignment: "CENTER",
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat,horizontalAlignment)",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   cols,
				},
			},
		},
	}
}

// CreateRoster builds one spreadsheet with a single worksheet holding the
// whole roster.  It fails unless the provider returns both an ID and a URL.
func (s *Service) CreateRoster(ctx context.Context, title string, data []model.PesertaView) (Roster, error) {
	created, err := s.Sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title:          singleSheetTitle,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return Roster{}, fmt.Errorf("create spreadsheet: %w", err)
	}
	if created.SpreadsheetId == "" || created.SpreadsheetUrl == "" {
		return Roster{}, errNoSpreadsheet
	}
	if len(created.Sheets) == 0 || created.Sheets[0].Properties == nil {
		return Roster{}, fmt.Errorf("spreadsheet %s has no sheet metadata", created.SpreadsheetId)
	}
	sheetID := created.Sheets[0].Properties.SheetId

	values := rosterValues(data, true)
	if _, err := s.Sheets.Spreadsheets.Values.Update(
		created.SpreadsheetId, singleSheetTitle+"!A1",
		&sheets.ValueRange{Values: values},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return Roster{}, fmt.Errorf("write roster values: %w", err)
	}

	if _, err := s.Sheets.Spreadsheets.BatchUpdate(created.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: headerFormatRequests(sheetID, 6),
	}).Context(ctx).Do(); err != nil {
		return Roster{}, fmt.Errorf("format roster header: %w", err)
	}

	return Roster{SpreadsheetID: created.SpreadsheetId, SpreadsheetURL: created.SpreadsheetUrl}, nil
}

// CreateRosterByMonth builds one spreadsheet with a worksheet per distinct
// birth month, named after the month, in first-occurrence order of the
// sorted input.  Rows omit the month column since the sheet implies it.
func (s *Service) CreateRosterByMonth(ctx context.Context, title string, data []model.PesertaView) (Roster, error) {
	groups := model.GroupByMonth(data)

	sheetReqs := make([]*sheets.Sheet, 0, len(groups))
	for _, g := range groups {
		sheetReqs = append(sheetReqs, &sheets.Sheet{
			Properties: &sheets.SheetProperties{
				Title:          g.Bulan,
				GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
			},
		})
	}

	created, err := s.Sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
		Sheets:     sheetReqs,
	}).Context(ctx).Do()
	if err != nil {
		return Roster{}, fmt.Errorf("create spreadsheet: %w", err)
	}
	if created.SpreadsheetId == "" || created.SpreadsheetUrl == "" {
		return Roster{}, errNoSpreadsheet
	}

	// Map sheet titles to the provider-assigned sheet IDs for formatting.
	sheetIDs := make(map[string]int64, len(created.Sheets))
	for _, sh := range created.Sheets {
		if sh.Properties != nil {
			sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}

	var formatReqs []*sheets.Request
	for _, g := range groups {
		values := rosterValues(g.Peserta, false)
		if _, err := s.Sheets.Spreadsheets.Values.Update(
			created.SpreadsheetId, g.Bulan+"!A1",
			&sheets.ValueRange{Values: values},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
			return Roster{}, fmt.Errorf("write sheet %s: %w", g.Bulan, err)
		}
		if id, ok := sheetIDs[g.Bulan]; ok {
			formatReqs = append(formatReqs, headerFormatRequests(id, 5)...)
		}
	}

	if len(formatReqs) > 0 {
		if _, err := s.Sheets.Spreadsheets.BatchUpdate(created.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: formatReqs,
		}).Context(ctx).Do(); err != nil {
			return Roster{}, fmt.Errorf("format sheets: %w", err)
		}
	}

	return Roster{SpreadsheetID: created.SpreadsheetId, SpreadsheetURL: created.SpreadsheetUrl}, nil
}
