package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/room-reservation/internal/model"
)

// BuildingRepo provides CRUD operations for buildings. Buildings are pure
// reference data owned by administrators.
type BuildingRepo struct{ DB *sql.DB }

func NewBuildingRepo(db *sql.DB) *BuildingRepo { return &BuildingRepo{DB: db} }

const buildingCols = "id, name, address, description, image_path"

func scanBuilding(row interface{ Scan(...any) error }) (model.Building, error) {
	var b model.Building
	var img sql.NullString
	err := row.Scan(&b.ID, &b.Name, &b.Address, &b.Description, &img)
	if err != nil {
		return b, err
	}
	if img.Valid {
		v := img.String
		b.ImagePath = &v
	}
	return b, nil
}

// Create inserts a building and populates the generated ID.
func (r *BuildingRepo) Create(ctx context.Context, b *model.Building) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO buildings (name, address, description, image_path) VALUES (?,?,?,?)",
		b.Name, b.Address, b.Description, b.ImagePath)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID fetches a building by id.
func (r *BuildingRepo) GetByID(ctx context.Context, id uint64) (model.Building, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+buildingCols+" FROM buildings WHERE id=? LIMIT 1", id)
	return scanBuilding(row)
}

// ListAll returns buildings ordered by name. A non-positive limit means
// no limit; offset applies only when a limit is set.
func (r *BuildingRepo) ListAll(ctx context.Context, limit, offset int) ([]model.Building, error) {
	q := "SELECT " + buildingCols + " FROM buildings ORDER BY name"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	buildings := make([]model.Building, 0)
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

// Update persists all mutable fields of a building.
func (r *BuildingRepo) Update(ctx context.Context, b *model.Building) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE buildings SET name=?, address=?, description=?, image_path=? WHERE id=?",
		b.Name, b.Address, b.Description, b.ImagePath, b.ID)
	return err
}

// Delete removes a building. Deleting a missing row is not an error;
// existence checks belong to the caller.
func (r *BuildingRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM buildings WHERE id=?", id)
	return err
}
