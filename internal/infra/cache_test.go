package infra

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	c := NewCache(100)
	defer c.Close()

	if c.maxEntries != 100 {
		t.Errorf("expected maxEntries=100, got %d", c.maxEntries)
	}
}

func TestNewCache_DefaultMaxEntries(t *testing.T) {
	for _, n := range []int{0, -1} {
		c := NewCache(n)
		if c.maxEntries != DefaultMaxCacheEntries {
			t.Errorf("expected maxEntries=%d for %d, got %d", DefaultMaxCacheEntries, n, c.maxEntries)
		}
		c.Close()
	}
}

func TestCache_SetAndGet(t *testing.T) {
	c := NewCache(100)
	defer c.Close()

	c.Set("price:0xabc", "1.23", 5*time.Minute)

	got, ok := c.Get("price:0xabc")
	if !ok {
		t.Fatal("expected to find price:0xabc")
	}
	if got != "1.23" {
		t.Errorf("expected '1.23', got %v", got)
	}
}

func TestCache_Get_NotFound(t *testing.T) {
	c := NewCache(100)
	defer c.Close()

	got, ok := c.Get("missing")
	if ok {
		t.Error("expected ok=false for missing key")
	}
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestCache_Get_Expired(t *testing.T) {
	c := NewCache(100)
	defer c.Close()

	c.Set("expiring", "value", 10*time.Millisecond)

	if _, ok := c.Get("expiring"); !ok {
		t.Error("expected to find key before expiration")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("expiring"); ok {
		t.Error("expected key to be expired")
	}
}

func TestCache_Set_Update(t *testing.T) {
	c := NewCache(100)
	defer c.Close()

	c.Set("key", "old", 5*time.Minute)
	c.Set("key", "new", 5*time.Minute)

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("expected to find key")
	}
	if got != "new" {
		t.Errorf("expected 'new', got %v", got)
	}
	if c.Size() != 1 {
		t.Errorf("updating a key should not grow the cache, size=%d", c.Size())
	}
}

func TestCache_Delete(t *testing.T) {
	c := NewCache(100)
	defer c.Close()

	c.Set("key", "value", 5*time.Minute)
	c.Delete("key")

	if _, ok := c.Get("key"); ok {
		t.Error("expected key to be deleted")
	}
	if c.Size() != 0 {
		t.Errorf("expected size 0, got %d", c.Size())
	}

	// Deleting a missing key must not corrupt the counter
	c.Delete("missing")
	if c.Size() != 0 {
		t.Errorf("expected size 0 after deleting missing key, got %d", c.Size())
	}
}

func TestCache_DeletePrefix(t *testing.T) {
	c := NewCache(100)
	defer c.Close()

	c.Set("balance:0xaaa", "1", 5*time.Minute)
	c.Set("balance:0xbbb", "2", 5*time.Minute)
	c.Set("price:0xaaa", "3", 5*time.Minute)

	c.DeletePrefix("balance:")

	if _, ok := c.Get("balance:0xaaa"); ok {
		t.Error("expected balance:0xaaa to be deleted")
	}
	if _, ok := c.Get("balance:0xbbb"); ok {
		t.Error("expected balance:0xbbb to be deleted")
	}
	if _, ok := c.Get("price:0xaaa"); !ok {
		t.Error("expected price:0xaaa to survive")
	}
	if c.Size() != 1 {
		t.Errorf("expected size 1, got %d", c.Size())
	}
}

func TestCache_EvictLRU(t *testing.T) {
	c := NewCache(100)
	defer c.Close()

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("key%d", i), i, 5*time.Minute)
		time.Sleep(time.Millisecond)
	}

	// Touch key0 so it becomes the most recently used
	c.Get("key0")

	c.evictLRU(5)

	if _, ok := c.Get("key0"); !ok {
		t.Error("most recently used key0 should survive eviction")
	}
	if c.Size() != 5 {
		t.Errorf("expected size 5 after evicting 5, got %d", c.Size())
	}
}

func TestCache_Cleanup_RemovesExpired(t *testing.T) {
	c := NewCache(100)
	defer c.Close()

	c.Set("short", "v", time.Millisecond)
	c.Set("long", "v", time.Hour)

	time.Sleep(5 * time.Millisecond)
	c.cleanup()

	if c.Size() != 1 {
		t.Errorf("expected size 1 after cleanup, got %d", c.Size())
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("unexpired entry should survive cleanup")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache(1000)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key%d-%d", n, j)
				c.Set(key, j, time.Minute)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Size() != 1000 {
		t.Errorf("expected 1000 entries, got %d", c.Size())
	}
}

func TestCache_Close_Idempotent(t *testing.T) {
	c := NewCache(10)
	c.Close()
	c.Close() // must not panic
}
