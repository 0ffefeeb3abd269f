package formation

import "github.com/cockroachdb/errors"

var (
	ErrNotInitialized      = errors.New("formation is not initialized")
	ErrAlreadyInitialized  = errors.New("formation is already initialized")
	ErrUnknownTemplate     = errors.New("unknown formation template")
	ErrInvalidTemplate     = errors.New("invalid formation template")
	ErrUnknownPosition     = errors.New("unknown position")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrOrphanSlot          = errors.New("position is not defined by template")
	ErrDuplicateAssignment = errors.New("duplicate assignment")
	ErrInvalidRoster       = errors.New("invalid roster")
	ErrInvalidCatalog      = errors.New("invalid formation catalog")
)

// IsRuleViolation reports whether err was raised by formation rules rather
// than by infrastructure.
func IsRuleViolation(err error) bool {
	return errors.IsAny(err,
		ErrNotInitialized,
		ErrAlreadyInitialized,
		ErrUnknownTemplate,
		ErrInvalidTemplate,
		ErrUnknownPosition,
		ErrUnknownPlayer,
		ErrOrphanSlot,
		ErrDuplicateAssignment,
		ErrInvalidRoster,
	)
}
