package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUGetSetDelete(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("empty cache must miss")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("got %v/%v", v, ok)
	}
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("overwrite: got %v", v)
	}
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("deleted key must miss")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // touch a so b is the eviction candidate
	c.Set("c", "3")
	if _, ok := c.Get("b"); ok {
		t.Fatalf("least recently used entry must be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("recently used entry must survive")
	}
	if c.Size() != 2 {
		t.Fatalf("size %d, want 2", c.Size())
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expired entry must miss")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	time.Sleep(20 * time.Millisecond)
	if n := c.CleanExpired(); n != 5 {
		t.Fatalf("cleaned %d, want 5", n)
	}
	if c.Size() != 0 {
		t.Fatalf("size %d after cleanup", c.Size())
	}
}
