package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const markerTTL = 15 * time.Minute

// ReconcileMarker records which principals had their submissions reconciled
// recently, so fetch paths can skip a redundant backfill. The reconciliation
// itself is idempotent; this marker is purely a load optimisation.
// Key format: reconciled:<principal_id>
type ReconcileMarker struct {
	client *redis.Client
}

// NewReconcileMarker creates a ReconcileMarker wrapping the given Redis client.
func NewReconcileMarker(client *redis.Client) *ReconcileMarker {
	return &ReconcileMarker{client: client}
}

// Seen reports whether a reconciliation for this principal ran within the TTL.
func (m *ReconcileMarker) Seen(ctx context.Context, principalID string) (bool, error) {
	n, err := m.client.Exists(ctx, m.key(principalID)).Result()
	if err != nil {
		return false, fmt.Errorf("reconcile marker check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this principal's reconciliation ran (expires after markerTTL).
func (m *ReconcileMarker) Mark(ctx context.Context, principalID string) error {
	return m.client.Set(ctx, m.key(principalID), "1", markerTTL).Err()
}

func (m *ReconcileMarker) key(principalID string) string {
	return "reconciled:" + principalID
}
