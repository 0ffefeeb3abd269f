package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/platform/cache"
	"github.com/riskibarqy/formation-editor/internal/platform/id"
)

const defaultEditorSessionTTL = 30 * time.Minute

// EditorSession owns one formation state. All access goes through Do so the
// state sees a single writer at a time.
type EditorSession struct {
	ID       string
	TeamID   string
	OpenedAt time.Time

	mu    sync.Mutex
	state *formation.State
}

// Do runs fn with exclusive access to the session state.
func (s *EditorSession) Do(fn func(state *formation.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// EditorSessions is the registry of open editors. Sessions expire after ttl
// without activity.
type EditorSessions struct {
	store *cache.Store[*EditorSession]
	ids   id.Generator
	now   func() time.Time
}

func NewEditorSessions(ttl time.Duration, ids id.Generator) *EditorSessions {
	if ttl <= 0 {
		ttl = defaultEditorSessionTTL
	}
	if ids == nil {
		ids = id.NewPrefixedGenerator("es_", 12)
	}
	return &EditorSessions{
		store: cache.NewStore[*EditorSession](ttl),
		ids:   ids,
		now:   time.Now,
	}
}

func (r *EditorSessions) Open(ctx context.Context, teamID string, state *formation.State) (*EditorSession, error) {
	if state == nil || !state.Initialized() {
		return nil, fmt.Errorf("open editor session: %w", formation.ErrNotInitialized)
	}

	sessionID, err := r.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate editor session id: %w", err)
	}

	session := &EditorSession{
		ID:       sessionID,
		TeamID:   teamID,
		OpenedAt: r.now().UTC(),
		state:    state,
	}
	r.store.Set(ctx, sessionKey(sessionID), session)
	return session, nil
}

// Get returns a live session and refreshes its idle deadline.
func (r *EditorSessions) Get(ctx context.Context, sessionID string) (*EditorSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session_id is required", ErrInvalidInput)
	}

	session, ok := r.store.Get(ctx, sessionKey(sessionID))
	if !ok {
		return nil, fmt.Errorf("%w: editor session=%s", ErrNotFound, sessionID)
	}
	r.store.Touch(ctx, sessionKey(sessionID))
	return session, nil
}

func (r *EditorSessions) Close(ctx context.Context, sessionID string) error {
	if _, err := r.Get(ctx, sessionID); err != nil {
		return err
	}
	r.store.Delete(ctx, sessionKey(sessionID))
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (r *EditorSessions) Sweep(ctx context.Context) int {
	return r.store.Sweep(ctx)
}

func (r *EditorSessions) Len() int {
	return r.store.Len()
}

func sessionKey(sessionID string) string {
	return "editor-session:" + sessionID
}
