package ranking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got map[string]int
	hit, err := cache.Get(ctx, "k", &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !hit {
		t.Fatal("expected hit")
	}
	if got["a"] != 1 {
		t.Errorf("got %v", got)
	}
}

func TestMemoryCache_MissOnUnknownKey(t *testing.T) {
	cache := NewMemoryCache()

	var dest string
	hit, err := cache.Get(context.Background(), "nope", &dest)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if hit {
		t.Error("expected miss")
	}
}

func TestMemoryCache_ReadAfterExpiryIsMiss(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Now()
	cache.now = func() time.Time { return now }

	if err := cache.Set(context.Background(), "k", "v", 10*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var dest string
	if hit, _ := cache.Get(context.Background(), "k", &dest); !hit {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(10*time.Minute + time.Second)
	if hit, _ := cache.Get(context.Background(), "k", &dest); hit {
		t.Error("expected miss after TTL elapsed")
	}
}

func TestMemoryCache_SweepReclaimsExpired(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Now()
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	_ = cache.Set(ctx, "old", "v", time.Minute)
	_ = cache.Set(ctx, "fresh", "v", time.Hour)

	now = now.Add(10 * time.Minute)
	if removed := cache.Sweep(); removed != 1 {
		t.Errorf("sweep removed %d entries, want 1", removed)
	}

	var dest string
	if hit, _ := cache.Get(ctx, "fresh", &dest); !hit {
		t.Error("sweep removed an unexpired entry")
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%5)
			for j := 0; j < 100; j++ {
				_ = cache.Set(ctx, key, n, time.Minute)
				var dest int
				_, _ = cache.Get(ctx, key, &dest)
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryCache_GetHandsOutCopies(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", map[string]bool{"a": true}, time.Minute)

	var first map[string]bool
	_, _ = cache.Get(ctx, "k", &first)
	first["mutated"] = true

	var second map[string]bool
	_, _ = cache.Get(ctx, "k", &second)
	if _, ok := second["mutated"]; ok {
		t.Error("cache entry was mutated through a returned value")
	}
}
