package player

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// ID identifies a roster player. It is opaque: callers compare ids by equality only.
type ID string

// IsZero reports whether the id is empty. The empty id marks an unassigned slot.
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both string and numeric ids. Older editor clients send
// numeric player ids while newer ones send strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		raw, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("decode player id: %w", err)
		}
		*id = ID(strings.TrimSpace(raw))
		return nil
	}

	// Numeric ids keep their literal text; 7 and 7.0 are different ids.
	if !isJSONNumber(data) {
		return fmt.Errorf("player id must be a string or number: %s", data)
	}
	*id = ID(data)
	return nil
}

func isJSONNumber(data []byte) bool {
	if data[0] != '-' && (data[0] < '0' || data[0] > '9') {
		return false
	}
	return jsoniter.Valid(data)
}

// Player is a roster member that can be placed on a formation slot.
type Player struct {
	ID              ID
	TeamID          string
	Name            string
	Number          *int
	NaturalPosition string
}

func (p Player) Validate() error {
	if p.ID.IsZero() {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Number != nil && (*p.Number < 0 || *p.Number > 99) {
		return fmt.Errorf("invalid shirt number: %d", *p.Number)
	}

	return nil
}

// IntPtr is a small helper for building players with shirt numbers.
func IntPtr(v int) *int {
	return &v
}
