package cache

import (
	"testing"
	"time"

	"github.com/BerylCAtieno/persona-insights/internal/models"
)

func newTestCache(capacity int) (*Expiring[string, int], *time.Time) {
	c := NewExpiring[string, int](capacity, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestExpiringGetAfterTTL(t *testing.T) {
	c, now := newTestCache(10)
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit, got %v %v", v, ok)
	}

	*now = now.Add(time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected entry to expire")
	}
	if len(c.index) != 0 || c.byAge.Len() != 0 {
		t.Fatalf("expired entry must be removed")
	}
}

func TestExpiringSetSweepsExpired(t *testing.T) {
	c, now := newTestCache(10)
	c.Set("old", 1)
	*now = now.Add(45 * time.Second)
	c.Set("mid", 2)
	*now = now.Add(30 * time.Second)
	c.Set("new", 3)

	if _, ok := c.index["old"]; ok {
		t.Fatalf("expected expired entry to be swept on set")
	}
	if len(c.index) != 2 {
		t.Fatalf("expected 2 live entries, got %d", len(c.index))
	}
}

func TestExpiringEvictsOldestWhenFull(t *testing.T) {
	c, now := newTestCache(2)
	c.Set("a", 1)
	*now = now.Add(time.Second)
	c.Set("b", 2)
	c.Get("a")
	*now = now.Add(time.Second)
	c.Set("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected oldest entry to be evicted even after a read")
	}
	for _, key := range []string{"b", "c"} {
		if _, ok := c.Get(key); !ok {
			t.Fatalf("expected %s to survive", key)
		}
	}
}

func TestExpiringSetRefreshesTTL(t *testing.T) {
	c, now := newTestCache(2)
	c.Set("a", 1)
	*now = now.Add(50 * time.Second)
	c.Set("a", 2)
	*now = now.Add(50 * time.Second)

	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Fatalf("expected refreshed entry, got %v %v", v, ok)
	}
	if c.byAge.Len() != 1 {
		t.Fatalf("re-set must not duplicate the entry")
	}
}

func TestReportStore(t *testing.T) {
	store := NewReportStore(4, time.Minute)
	report := &models.InsightReport{Catchphrases: []string{"a"}}
	id := store.Put(report)
	if id == "" {
		t.Fatalf("expected id")
	}
	got, ok := store.Get(id)
	if !ok || got != report {
		t.Fatalf("expected stored report")
	}
	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected miss")
	}
	if other := store.Put(report); other == id {
		t.Fatalf("expected distinct ids")
	}
}
