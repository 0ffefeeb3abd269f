package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	TeamID          string         `db:"team_public_id"`
	Name            string         `db:"name"`
	ShirtNumber     sql.NullInt64  `db:"shirt_number"`
	NaturalPosition sql.NullString `db:"natural_position"`
	DisplayOrder    int            `db:"display_order"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}
