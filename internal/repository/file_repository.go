package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/room-reservation/internal/model"
)

// FileRepo stores uploaded files with their content in the database.
// Listings return metadata only; content is loaded on download.
type FileRepo struct{ DB *sql.DB }

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{DB: db} }

const fileMetaCols = "id, uploaded_by, file_name, file_type, file_extension, upload_date, modification_date, operation"

func scanFileMeta(row interface{ Scan(...any) error }) (model.File, error) {
	var f model.File
	var mod sql.NullTime
	err := row.Scan(&f.ID, &f.UploadedBy, &f.FileName, &f.FileType,
		&f.FileExtension, &f.UploadDate, &mod, &f.Operation)
	if err != nil {
		return f, err
	}
	if mod.Valid {
		v := mod.Time
		f.ModificationDate = &v
	}
	return f, nil
}

// Create inserts a file record with its content and populates the
// generated ID.
func (r *FileRepo) Create(ctx context.Context, f *model.File) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO files (uploaded_by, file_name, file_type, file_extension, operation, content)
		 VALUES (?,?,?,?,?,?)`,
		f.UploadedBy, f.FileName, f.FileType, f.FileExtension, f.Operation, f.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// GetByID loads a file including its content.
func (r *FileRepo) GetByID(ctx context.Context, id uint64) (model.File, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+fileMetaCols+", content FROM files WHERE id=? LIMIT 1", id)
	var f model.File
	var mod sql.NullTime
	err := row.Scan(&f.ID, &f.UploadedBy, &f.FileName, &f.FileType,
		&f.FileExtension, &f.UploadDate, &mod, &f.Operation, &f.Content)
	if err != nil {
		return f, err
	}
	if mod.Valid {
		v := mod.Time
		f.ModificationDate = &v
	}
	return f, nil
}

// ListByUser returns the metadata of files uploaded by one user.
func (r *FileRepo) ListByUser(ctx context.Context, userID uint64) ([]model.File, error) {
	return r.list(ctx,
		"SELECT "+fileMetaCols+" FROM files WHERE uploaded_by=? ORDER BY upload_date DESC", userID)
}

// ListAll returns the metadata of every file, newest first.
func (r *FileRepo) ListAll(ctx context.Context) ([]model.File, error) {
	return r.list(ctx, "SELECT "+fileMetaCols+" FROM files ORDER BY upload_date DESC")
}

func (r *FileRepo) list(ctx context.Context, q string, args ...any) ([]model.File, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	files := make([]model.File, 0)
	for rows.Next() {
		f, err := scanFileMeta(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Delete removes a file record.
func (r *FileRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM files WHERE id=?", id)
	return err
}
