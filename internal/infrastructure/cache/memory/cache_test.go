package memory

import (
	"fmt"
	"sync"
	"testing"
)

func TestGetMissThenHit(t *testing.T) {
	cache := New()

	if _, ok := cache.Get(42); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Put(42, "pruned")
	value, ok := cache.Get(42)
	if !ok || value != "pruned" {
		t.Fatalf("expected hit with %q, got %q ok=%v", "pruned", value, ok)
	}
}

func TestPutOverwritesExistingKey(t *testing.T) {
	cache := New()
	cache.Put(1, "first")
	cache.Put(1, "second")

	value, _ := cache.Get(1)
	if value != "second" {
		t.Fatalf("expected last write to win, got %q", value)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", cache.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	cache := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := uint64(j % 10)
				cache.Put(key, fmt.Sprintf("value-%d", i))
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if cache.Len() != 10 {
		t.Fatalf("expected 10 entries, got %d", cache.Len())
	}
}
