package cache

import (
	"container/list"
	"sync"
	"time"
)

type item[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

// Expiring is a bounded map whose entries live for a fixed TTL from their last Set. Entries are
// kept in expiry order, so the oldest entry is both the next to expire and the first evicted when
// the cache is full. Reads do not extend an entry's life.
type Expiring[K comparable, V any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	byAge    *list.List // front: newest
	index    map[K]*list.Element
	now      func() time.Time
}

// NewExpiring creates a cache holding at most capacity entries for ttl each.
func NewExpiring[K comparable, V any](capacity int, ttl time.Duration) *Expiring[K, V] {
	return &Expiring[K, V]{
		ttl:      max(ttl, time.Second),
		capacity: max(capacity, 1),
		byAge:    list.New(),
		index:    make(map[K]*list.Element),
		now:      time.Now,
	}
}

// Get returns the value stored under key unless it has expired.
func (c *Expiring[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.index[key]
	if !ok {
		return zero, false
	}
	it := el.Value.(*item[K, V])
	if !c.now().Before(it.expires) {
		c.drop(el)
		return zero, false
	}
	return it.value, true
}

// Set stores value under key with a fresh TTL, then sweeps expired entries and trims to capacity.
func (c *Expiring[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if el, ok := c.index[key]; ok {
		c.drop(el)
	}
	c.index[key] = c.byAge.PushFront(&item[K, V]{key: key, value: value, expires: now.Add(c.ttl)})

	for el := c.byAge.Back(); el != nil; el = c.byAge.Back() {
		if len(c.index) <= c.capacity && now.Before(el.Value.(*item[K, V]).expires) {
			break
		}
		c.drop(el)
	}
}

func (c *Expiring[K, V]) drop(el *list.Element) {
	c.byAge.Remove(el)
	delete(c.index, el.Value.(*item[K, V]).key)
}
