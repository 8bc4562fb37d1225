package client

import (
	"sync"
	"time"
)

type visit struct {
	ItemID   string    `json:"itemId"` // eg. "plants_604b6859f09f3aeecc9215c5"
	Accessed time.Time `json:"accessed"`
}

// the last relevant request per client is kept in a package-level map,
// guarded by a mutex because the hourly flush runs in its own goroutine
var registry = struct {
	sync.RWMutex
	visits map[string]visit
}{}

// Registry tracks which catalog item each client touched last. It is used to
// suppress page-refresh noise in the visit analytics and feeds the monitor
// endpoints.
type Registry struct {
}

func (r Registry) Initialize() {
	registry.visits = make(map[string]visit)
}

// Continue registers an access and reports whether it counts as a new visit;
// the same client re-requesting the same item is a refresh, not a visit
func (r Registry) Continue(client string, itemID string) bool {

	registry.RLock()
	fresh := registry.visits[client].ItemID != itemID
	registry.RUnlock()

	registry.Lock()
	registry.visits[client] = visit{
		ItemID:   itemID,
		Accessed: time.Now(),
	}
	registry.Unlock()

	return fresh
}

// Flush removes entries older than 15 minutes once the map has grown;
// called by the hourly maintenance goroutine and by the monitor endpoint
func (r Registry) Flush() {
	registry.Lock()
	now := time.Now()
	if len(registry.visits) > 5000 {
		// deleting while ranging is fine, map iteration is unordered
		for key, value := range registry.visits {
			if now.Sub(value.Accessed).Minutes() > 15 {
				delete(registry.visits, key)
			}
		}
	}
	registry.Unlock()
}

// Count returns how many different clients are currently tracked
func (r Registry) Count() int {
	registry.RLock()
	cnt := len(registry.visits)
	registry.RUnlock()
	return cnt
}

// Dump returns the last accessed item and timestamp for up to max clients
func (r Registry) Dump(max int) []visit {

	var res []visit

	registry.RLock()
	for _, v := range registry.visits {
		if len(res) >= max {
			break
		}
		res = append(res, v)
	}
	registry.RUnlock()

	return res
}
