package cart

import "context"

// Snapshot is the persisted form of a session's cart, and the payload
// echoed to other sessions on change. Origin identifies the publishing
// store instance so it can skip its own notifications.
type Snapshot struct {
	Version   int    `json:"version"`
	Origin    string `json:"origin"`
	SessionID string `json:"session_id"`
	Items     []Item `json:"items"`
}

// SnapshotVersion is bumped when the persisted layout changes shape.
const SnapshotVersion = 1

// Validate checks an inbound snapshot's shape before it may replace local
// state. Payloads from other tabs arrive over pub/sub and are never
// trusted.
func (s *Snapshot) Validate() bool {
	if s.Version != SnapshotVersion || s.SessionID == "" {
		return false
	}
	for _, it := range s.Items {
		if it.ProductID == "" || it.Quantity < 1 || it.Price < 0 {
			return false
		}
	}
	return true
}

// Repository persists cart snapshots and streams change notifications from
// other sessions. Implementations are best-effort: the in-memory store is
// authoritative and keeps serving when persistence is down.
type Repository interface {
	// Load returns the stored snapshot for a session, or nil when none
	// exists.
	Load(ctx context.Context, sessionID string) (*Snapshot, error)

	// Save stores a snapshot and announces the change to other listeners.
	Save(ctx context.Context, snap *Snapshot) error

	// Delete removes a session's stored snapshot.
	Delete(ctx context.Context, sessionID string) error

	// Watch delivers snapshots published by other instances until ctx is
	// canceled. Malformed payloads are dropped before delivery.
	Watch(ctx context.Context) (<-chan *Snapshot, error)
}
