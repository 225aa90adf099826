package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iliyamo/room-reservation/internal/auth"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// FileService handles uploaded documents. Files follow the same
// ownership rule as bookings: the uploader and administrators may read
// or delete them, nobody else.
type FileService struct {
	Files *repository.FileRepo
}

func NewFileService(files *repository.FileRepo) *FileService {
	return &FileService{Files: files}
}

// Upload stores a file for the calling identity. The uploader is always
// the caller.
func (s *FileService) Upload(ctx context.Context, id auth.Identity, f *model.File) error {
	f.UploadedBy = id.UserID
	if f.FileName == "" {
		return fmt.Errorf("%w: file name is required", ErrValidation)
	}
	if len(f.Content) == 0 {
		return fmt.Errorf("%w: file is empty", ErrValidation)
	}
	if f.FileExtension == "" {
		f.FileExtension = strings.TrimPrefix(filepath.Ext(f.FileName), ".")
	}
	if f.Operation == "" {
		f.Operation = "upload"
	}
	if err := s.Files.Create(ctx, f); err != nil {
		return fmt.Errorf("store file: %w", err)
	}
	return nil
}

// Download loads a file with its content. Non-admins may only read
// their own uploads.
func (s *FileService) Download(ctx context.Context, id auth.Identity, fileID uint64) (model.File, error) {
	f, err := s.Files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.File{}, fmt.Errorf("%w: file %d", ErrNotFound, fileID)
		}
		return model.File{}, fmt.Errorf("load file: %w", err)
	}
	if !auth.Authorize(id, &f.UploadedBy, auth.RoleAdministrator, auth.RoleRegisteredUser) {
		return model.File{}, fmt.Errorf("%w: file %d belongs to another user", ErrForbidden, fileID)
	}
	return f, nil
}

// Delete removes a file. Same visibility rules as Download.
func (s *FileService) Delete(ctx context.Context, id auth.Identity, fileID uint64) error {
	if _, err := s.Download(ctx, id, fileID); err != nil {
		return err
	}
	if err := s.Files.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// ListForCaller returns all file metadata for administrators and the
// caller's own uploads otherwise.
func (s *FileService) ListForCaller(ctx context.Context, id auth.Identity) ([]model.File, error) {
	if id.IsAdmin() {
		return s.Files.ListAll(ctx)
	}
	return s.Files.ListByUser(ctx, id.UserID)
}
