package cache

import "github.com/google/uuid"

// Cache keys live in one place so they cannot drift between the read path
// and the invalidation path.

// ListKey is the cache key for a user's full task listing.
func ListKey(ownerID uuid.UUID) string {
	return "tasks:list:" + ownerID.String()
}
