package utils

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

// Revoker remembers logged-out session ids until the session would have
// expired anyway. Redis is preferred so every instance sees the same list;
// without it an in-memory map is used.
type Revoker struct {
	rc *redis.Client

	mu  sync.RWMutex
	mem map[string]time.Time
}

// NewRevoker creates a Revoker. rc may be nil.
func NewRevoker(rc *redis.Client) *Revoker {
	return &Revoker{rc: rc, mem: map[string]time.Time{}}
}

// Revoke marks the session id as logged out until expiresAt.
func (r *Revoker) Revoke(ctx context.Context, id string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if id == "" || ttl <= 0 {
		return
	}
	if r.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := r.rc.Set(ctx, revokedKeyPrefix+id, "1", ttl).Err()
		if err == nil {
			return
		}
		Sugar.Warnw("revoke session in redis failed, keeping it in memory", "err", err)
	}
	r.mu.Lock()
	r.mem[id] = expiresAt
	r.dropExpiredLocked()
	r.mu.Unlock()
}

// IsRevoked reports whether the session id was logged out.
func (r *Revoker) IsRevoked(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}
	if r.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		n, err := r.rc.Exists(ctx, revokedKeyPrefix+id).Result()
		if err == nil && n > 0 {
			return true
		}
		if err != nil {
			// fail open on redis errors to avoid locking everyone out
			Sugar.Warnw("check revoked session failed", "err", err)
		}
	}
	r.mu.RLock()
	exp, ok := r.mem[id]
	r.mu.RUnlock()
	return ok && time.Now().Before(exp)
}

func (r *Revoker) dropExpiredLocked() {
	now := time.Now()
	for id, exp := range r.mem {
		if now.After(exp) {
			delete(r.mem, id)
		}
	}
}

// Sweep drops in-memory entries whose sessions have expired and returns how
// many remain. Redis entries expire on their own.
func (r *Revoker) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropExpiredLocked()
	return len(r.mem)
}
