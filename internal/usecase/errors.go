package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// formationInputError keeps the formation rule sentinel in the chain so the
// transport can tell rule violations from malformed input.
func formationInputError(err error) error {
	if err == nil {
		return nil
	}
	if formation.IsRuleViolation(err) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
