package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/room-reservation/internal/model"
)

// RoomRepo provides CRUD operations for rooms plus the unit price lookup
// used when deriving invoices.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

const roomCols = "id, building_id, room_number, capacity, has_projector, has_whiteboard, description, image_path, price_cents"

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var rm model.Room
	var img sql.NullString
	err := row.Scan(&rm.ID, &rm.BuildingID, &rm.RoomNumber, &rm.Capacity,
		&rm.HasProjector, &rm.HasWhiteboard, &rm.Description, &img, &rm.PriceCents)
	if err != nil {
		return rm, err
	}
	if img.Valid {
		v := img.String
		rm.ImagePath = &v
	}
	return rm, nil
}

// Create inserts a room and populates the generated ID.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO rooms (building_id, room_number, capacity, has_projector, has_whiteboard, description, image_path, price_cents)
		 VALUES (?,?,?,?,?,?,?,?)`,
		rm.BuildingID, rm.RoomNumber, rm.Capacity, rm.HasProjector, rm.HasWhiteboard,
		rm.Description, rm.ImagePath, rm.PriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// GetByID fetches a room by id.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE id=? LIMIT 1", id)
	return scanRoom(row)
}

// GetPriceTx returns the unit price of a room within an existing
// transaction. Invoice derivation reads the price through this method so
// that the amount and the booking insert observe the same snapshot.
func (r *RoomRepo) GetPriceTx(ctx context.Context, tx *sql.Tx, id uint64) (uint32, error) {
	var price uint32
	err := tx.QueryRowContext(ctx,
		"SELECT price_cents FROM rooms WHERE id=? LIMIT 1", id).Scan(&price)
	return price, err
}

// ListAll returns rooms ordered by building then room number. A
// non-positive limit means no limit.
func (r *RoomRepo) ListAll(ctx context.Context, limit, offset int) ([]model.Room, error) {
	q := "SELECT " + roomCols + " FROM rooms ORDER BY building_id, room_number"
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
	rooms := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// Update persists all mutable fields of a room.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE rooms SET building_id=?, room_number=?, capacity=?, has_projector=?, has_whiteboard=?, description=?, image_path=?, price_cents=?
		 WHERE id=?`,
		rm.BuildingID, rm.RoomNumber, rm.Capacity, rm.HasProjector, rm.HasWhiteboard,
		rm.Description, rm.ImagePath, rm.PriceCents, rm.ID)
	return err
}

// Delete removes a room. Deleting a missing row is not an error.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", id)
	return err
}
