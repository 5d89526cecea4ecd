package domain

import "context"

// GatheringLocker serialises acceptance requests for the same gathering.
type GatheringLocker interface {
	// Lock blocks until the lock for gatheringID is held or ctx is done. The returned
	// unlock function is safe to call more than once.
	Lock(ctx context.Context, gatheringID string) (unlock func(), err error)
}
