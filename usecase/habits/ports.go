package habits

import "context"

// CompletionRecorder abstracts the home-page daily counter so the engine
// stays storage-agnostic. Recording is best-effort: implementations must
// never fail the surrounding mutation.
type CompletionRecorder interface {
	Record(ctx context.Context, delta int)
}

// Quota gates habit creation. Billing-driven entitlements live behind this
// interface; the default implementation is config-driven.
type Quota interface {
	CanCreate(ctx context.Context, ownerID string) (bool, error)
}
