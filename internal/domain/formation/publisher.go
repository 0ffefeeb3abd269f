package formation

import "context"

// PublishResult is the verdict of a remote persistence endpoint.
type PublishResult struct {
	Success bool
	Error   string
}

// Publisher forwards a saved snapshot to a remote persistence endpoint.
type Publisher interface {
	Publish(ctx context.Context, snapshot Snapshot) (PublishResult, error)
}
