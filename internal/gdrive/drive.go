package gdrive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const folderMIME = "application/vnd.google-apps.folder"

// Export MIME types understood by the Drive rendering endpoint.
const (
	ExcelMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PDFMIME   = "application/pdf"
)

// folderQuery builds the Drive search expression for an exact-name folder
// match under an optional parent.  Single quotes in the name are escaped so
// school or month names cannot break the query.
func folderQuery(name, parentID string) string {
	escaped := strings.ReplaceAll(name, "'", `\'`)
	parts := []string{
		fmt.Sprintf("name='%s'", escaped),
		fmt.Sprintf("mimeType='%s'", folderMIME),
		"trashed=false",
	}
	if parentID != "" {
		parts = append(parts, fmt.Sprintf("'%s' in parents", parentID))
	}
	return strings.Join(parts, " and ")
}

// EnsureFolder returns the ID of the folder with the given exact name under
// parentID, creating it when absent.  The lookup matches name, parent and
// folder MIME type; when duplicates exist the first match wins, which keeps
// the operation idempotent across concurrent uploads.
func (s *Service) EnsureFolder(ctx context.Context, name, parentID string) (string, error) {
	res, err := s.Drive.Files.List().
		Q(folderQuery(name, parentID)).
		Fields("files(id, name, parents)").
		Spaces("drive").
		PageSize(10).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("search folder %q: %w", name, err)
	}
	if len(res.Files) > 0 {
		f := res.Files[0]
		if f.Id == "" {
			return "", fmt.Errorf("folder %q found without an id", name)
		}
		return f.Id, nil
	}

	meta := &drive.File{Name: name, MimeType: folderMIME}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	created, err := s.Drive.Files.Create(meta).Fields("id, name").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", name, err)
	}
	return created.Id, nil
}

// UploadFile streams a local file into the given Drive folder under
// fileName and returns the created file's metadata including view links.
func (s *Service) UploadFile(ctx context.Context, localPath, fileName, folderID, mimeType string) (*drive.File, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	uploaded, err := s.Drive.Files.Create(&drive.File{
		Name:    fileName,
		Parents: []string{folderID},
	}).
		Media(f, googleapi.ContentType(mimeType)).
		Fields("id, name, webViewLink, webContentLink").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", fileName, err)
	}
	return uploaded, nil
}

// Export asks Drive to render the given file into mimeType and returns the
// resulting bytes unmodified.  Provider errors propagate to the caller.
func (s *Service) Export(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	resp, err := s.Drive.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// ExportExcel renders a spreadsheet as an .xlsx byte buffer.
func (s *Service) ExportExcel(ctx context.Context, spreadsheetID string) ([]byte, error) {
	return s.Export(ctx, spreadsheetID, ExcelMIME)
}

// ExportPDF renders a spreadsheet as a PDF byte buffer.
func (s *Service) ExportPDF(ctx context.Context, spreadsheetID string) ([]byte, error) {
	return s.Export(ctx, spreadsheetID, PDFMIME)
}
