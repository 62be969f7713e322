package utils

import (
	"context"
	"testing"
	"time"
)

func TestMemoryTTLCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	c := NewMemoryTTLCache(time.Minute)
	c.now = func() time.Time { return now }

	type entry struct {
		Name string
	}
	if err := c.Set(ctx, "k", entry{Name: "ana"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got entry
	ok, err := c.Get(ctx, "k", &got)
	if err != nil || !ok || got.Name != "ana" {
		t.Fatalf("Get = (%v, %v, %+v)", ok, err, got)
	}

	now = now.Add(time.Minute)
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Error("entry still present after its ttl")
	}

	_ = c.Set(ctx, "k", entry{Name: "bia"})
	_ = c.Delete(ctx, "k")
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Error("entry still present after Delete")
	}
}

func TestMemoryTTLCache_Bounded(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	c := NewMemoryTTLCache(time.Minute)
	c.now = func() time.Time { return now }
	c.maxEntries = 3

	t.Run("expired entries are swept when full", func(t *testing.T) {
		for _, k := range []string{"a", "b", "c"} {
			_ = c.Set(ctx, k, k)
		}
		now = now.Add(time.Minute)
		_ = c.Set(ctx, "d", "d")
		if n := len(c.entries); n != 1 {
			t.Fatalf("len = %d, want 1 after sweep", n)
		}
	})

	t.Run("entry closest to expiry is evicted", func(t *testing.T) {
		now = now.Add(time.Second)
		_ = c.Set(ctx, "e", "e")
		now = now.Add(time.Second)
		_ = c.Set(ctx, "f", "f")
		now = now.Add(time.Second)
		_ = c.Set(ctx, "g", "g")
		if n := len(c.entries); n != 3 {
			t.Fatalf("len = %d, want 3", n)
		}
		var got string
		if ok, _ := c.Get(ctx, "d", &got); ok {
			t.Error("oldest entry survived eviction")
		}
		if ok, _ := c.Get(ctx, "g", &got); !ok || got != "g" {
			t.Errorf("newest entry = (%v, %q)", ok, got)
		}
	})

	t.Run("overwrite does not evict", func(t *testing.T) {
		_ = c.Set(ctx, "g", "g2")
		if n := len(c.entries); n != 3 {
			t.Fatalf("len = %d, want 3", n)
		}
		var got string
		if ok, _ := c.Get(ctx, "e", &got); !ok {
			t.Error("overwrite evicted another entry")
		}
	})
}
