package team

import "fmt"

// Team owns a roster and at most one saved formation.
type Team struct {
	ID              string
	Name            string
	DefaultTemplate string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
