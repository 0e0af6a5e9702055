package handler

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idsynccam/registration-api/internal/config"
	"github.com/idsynccam/registration-api/internal/gdrive"
	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/queue"
	"github.com/idsynccam/registration-api/internal/repository"
	"github.com/idsynccam/registration-api/internal/response"
	queuepub "github.com/idsynccam/registration-api/internal/service"
	"github.com/idsynccam/registration-api/internal/utils"
)

// UploadHandler runs the media intake pipeline: validate the multipart
// form, derive the month/day folder path on Drive, upload the photo,
// persist the participant row and finally remove the local temp file.
type UploadHandler struct {
	Cfg     config.Config
	Drive   *gdrive.Service
	Peserta *repository.PesertaRepo
}

func NewUploadHandler(cfg config.Config, d *gdrive.Service, p *repository.PesertaRepo) *UploadHandler {
	return &UploadHandler{Cfg: cfg, Drive: d, Peserta: p}
}

// UploadPhoto handles POST /api/upload.  Expects a multipart form with a
// "photo" file plus fullName, tglLahir (YYYY-MM-DD) and asalSekolah fields.
// Validation (missing file or birth date, non-image MIME, size cap) happens
// before any remote call; the remote upload must succeed before the local
// temp file is removed, and there is no compensating cleanup if the
// database insert fails afterwards.
func (h *UploadHandler) UploadPhoto(c echo.Context) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "photo file is required")
	}
	fullName := strings.TrimSpace(c.FormValue("fullName"))
	asalSekolah := strings.TrimSpace(c.FormValue("asalSekolah"))
	tglLahirRaw := strings.TrimSpace(c.FormValue("tglLahir"))
	if tglLahirRaw == "" {
		return response.Error(c, http.StatusBadRequest, "tglLahir is required")
	}
	if fullName == "" || asalSekolah == "" {
		return response.Error(c, http.StatusBadRequest, "fullName and asalSekolah are required")
	}
	tglLahir, err := time.Parse("2006-01-02", tglLahirRaw)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "tglLahir must be YYYY-MM-DD")
	}

	if file.Size > h.Cfg.MaxUploadBytes {
		return response.Error(c, http.StatusBadRequest, "file exceeds the 10 MB limit")
	}
	mime := file.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		return response.Error(c, http.StatusBadRequest, "only image uploads are accepted")
	}

	tmpPath, err := h.saveTemp(file)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "failed to store upload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	// Folder path on Drive: month name, then zero-padded day.
	bulan := utils.BulanFromDate(tglLahir)
	tanggal := utils.TanggalFromDate(tglLahir)
	monthID, err := h.Drive.EnsureFolder(ctx, bulan, h.Cfg.DriveRootFolderID)
	if err != nil {
		_ = os.Remove(tmpPath)
		return response.Error(c, http.StatusInternalServerError, "failed to prepare drive folder")
	}
	dayID, err := h.Drive.EnsureFolder(ctx, tanggal, monthID)
	if err != nil {
		_ = os.Remove(tmpPath)
		return response.Error(c, http.StatusInternalServerError, "failed to prepare drive folder")
	}

	remoteName := fullName + "-" + asalSekolah + filepath.Ext(file.Filename)
	uploaded, err := h.Drive.UploadFile(ctx, tmpPath, remoteName, dayID, mime)
	if err != nil {
		_ = os.Remove(tmpPath)
		return response.Error(c, http.StatusInternalServerError, "failed to upload photo")
	}

	usia := fmt.Sprintf("%d", utils.AgeAt(tglLahir, time.Now()))
	id, err := h.Peserta.Create(ctx, model.Peserta{
		FullName:    fullName,
		AsalSekolah: asalSekolah,
		TglLahir:    tglLahir,
		Usia:        usia,
	})
	if err != nil {
		// The remote file already exists; there is no compensating delete.
		_ = os.Remove(tmpPath)
		return response.Error(c, http.StatusInternalServerError, "failed to save peserta")
	}
	_ = os.Remove(tmpPath)

	if err := queuepub.PublishPesertaRegistered(ctx, queue.PesertaRegisteredEvent{
		PesertaID:    id,
		FullName:     fullName,
		AsalSekolah:  asalSekolah,
		TglLahir:     tglLahirRaw,
		Usia:         usia,
		Bulan:        bulan,
		DriveFileID:  uploaded.Id,
		DriveLink:    uploaded.WebViewLink,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("upload: publish peserta.registered failed: %v", err)
	}

	return response.Success(c, http.StatusCreated, "Upload berhasil", echo.Map{
		"folder_bulan": bulan,
		"folder_id":    dayID,
		"file": echo.Map{
			"id":             uploaded.Id,
			"name":           uploaded.Name,
			"webViewLink":    uploaded.WebViewLink,
			"webContentLink": uploaded.WebContentLink,
			"pesertaId":      id,
			"usia":           usia,
		},
	})
}

// saveTemp copies the multipart file into the configured upload directory
// so the Drive client can stream it from disk.
func (h *UploadHandler) saveTemp(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp(h.Cfg.UploadDir, "upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}
