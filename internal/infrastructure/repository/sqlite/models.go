package sqlite

import (
	"database/sql"
)

type teamRow struct {
	ID               int64  `db:"id"`
	PublicID         string `db:"public_id"`
	Name             string `db:"name"`
	DefaultFormation string `db:"default_formation"`
}

type teamInsertModel struct {
	PublicID         string `db:"public_id"`
	Name             string `db:"name"`
	DefaultFormation string `db:"default_formation"`
}

type playerRow struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	TeamID          string         `db:"team_public_id"`
	Name            string         `db:"name"`
	ShirtNumber     sql.NullInt64  `db:"shirt_number"`
	NaturalPosition sql.NullString `db:"natural_position"`
	DisplayOrder    int            `db:"display_order"`
}

type playerInsertModel struct {
	PublicID        string         `db:"public_id"`
	TeamID          string         `db:"team_public_id"`
	Name            string         `db:"name"`
	ShirtNumber     sql.NullInt64  `db:"shirt_number"`
	NaturalPosition sql.NullString `db:"natural_position"`
	DisplayOrder    int            `db:"display_order"`
}

type formationRow struct {
	TeamID        string `db:"team_public_id"`
	FormationType string `db:"formation_type"`
	Positions     string `db:"positions"`
	UpdatedAt     string `db:"updated_at"`
}

// storedPosition is the JSON element of formations.positions.
type storedPosition struct {
	SlotID   string `json:"id"`
	PlayerID string `json:"player_id,omitempty"`
}

func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullToIntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

func intPtrToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
