package attendance

import (
	"sync"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/domain/attendance"
)

type cacheKey struct {
	date   string
	policy attendance.DedupPolicy
}

// Cache is the process-local attendance query cache, keyed by (date, policy)
// because the two policies produce materially different result sets. There
// is no TTL: attendance for a day only changes when a sync pass runs, so the
// orchestrator invalidates explicitly.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey][]attendance.Entry
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey][]attendance.Entry),
	}
}

// Get returns the cached entries for (date, policy), or ok=false on a miss.
// The returned slice is a deep copy; callers own it outright and may mutate
// entries, pointer fields included, without touching the cached value.
func (c *Cache) Get(date time.Time, policy attendance.DedupPolicy) ([]attendance.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.entries[c.key(date, policy)]
	if !ok {
		return nil, false
	}
	return cloneEntries(cached), true
}

// Put stores the entries for (date, policy), replacing any previous value.
// The cache keeps its own deep copy so later caller mutations cannot leak in.
func (c *Cache) Put(date time.Time, policy attendance.DedupPolicy, entries []attendance.Entry) {
	stored := cloneEntries(entries)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(date, policy)] = stored
}

// InvalidateAll drops every cached day, under both policies. Called when a
// sync pass completes or the active policy toggles.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey][]attendance.Entry)
}

// Len reports how many (date, policy) keys are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) key(date time.Time, policy attendance.DedupPolicy) cacheKey {
	return cacheKey{date: date.Format("2006-01-02"), policy: policy}
}

// cloneEntries copies the slice and reallocates the pointer fields, so
// neither side of a Get/Put can reach the other's strings.
func cloneEntries(entries []attendance.Entry) []attendance.Entry {
	out := make([]attendance.Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].ResolvedEmployeeID != nil {
			id := *out[i].ResolvedEmployeeID
			out[i].ResolvedEmployeeID = &id
		}
		if out[i].EmployeeName != nil {
			name := *out[i].EmployeeName
			out[i].EmployeeName = &name
		}
	}
	return out
}
