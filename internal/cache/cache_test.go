package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU(2)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set("a", "https://example.org/a")
	c.Set("b", "https://example.org/b")

	if got, ok := c.Get("a"); !ok || got != "https://example.org/a" {
		t.Fatalf("Get(a) = %q, %v", got, ok)
	}

	// b is now least recently used
	c.Set("c", "https://example.org/c")
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestLRU_Update(t *testing.T) {
	c := NewLRU(2)
	c.Set("a", "old")
	c.Set("a", "new")
	if got, _ := c.Get("a"); got != "new" {
		t.Errorf("Get(a) = %q, want new", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU(0)
	c.Set("a", "x")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	if s.Capacity != DefaultEntries || s.Entries != 1 || s.Hits != 2 || s.Misses != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if rate := s.HitRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("HitRate = %v", rate)
	}

	c.Clear()
	if s := c.Stats(); s.Entries != 0 || s.Hits != 0 {
		t.Errorf("stats after Clear: %+v", s)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU(64)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", i, j%10)
				c.Set(key, key)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}

func TestKey(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("keys of different pairs collide")
	}
}
