package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/service"
)

// maxUploadBytes bounds a single file upload.
const maxUploadBytes = 16 << 20 // 16 MiB

// FileHandler serves file upload, download, listing and deletion.
type FileHandler struct {
	Files *service.FileService
}

func NewFileHandler(f *service.FileService) *FileHandler {
	return &FileHandler{Files: f}
}

// Upload accepts a multipart form with a "file" part and stores it for
// the caller.
func (h *FileHandler) Upload(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file part required"})
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "open upload failed"})
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	if int64(len(content)) > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}

	f := model.File{
		FileName:      filepath.Base(fh.Filename),
		FileType:      fh.Header.Get("Content-Type"),
		FileExtension: strings.TrimPrefix(filepath.Ext(fh.Filename), "."),
		Content:       content,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Files.Upload(ctx, id, &f); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// List returns the caller's file metadata, or everything for admins.
func (h *FileHandler) List(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	files, err := h.Files.ListForCaller(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"files": files})
}

// Download streams the file content back with its stored content type.
func (h *FileHandler) Download(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	fileID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	f, err := h.Files.Download(ctx, id, fileID)
	if err != nil {
		return serviceError(c, err)
	}
	ctype := f.FileType
	if ctype == "" {
		ctype = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, f.FileName))
	return c.Blob(http.StatusOK, ctype, f.Content)
}

// Delete removes a file.
func (h *FileHandler) Delete(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	fileID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Files.Delete(ctx, id, fileID); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
