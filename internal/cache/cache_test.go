package cache

import (
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	k1 := Key("rewrite", "texto", "openai")
	k2 := Key("rewrite", "texto", "openai")
	if k1 != k2 {
		t.Error("Expected identical inputs to produce identical keys")
	}

	k3 := Key("rewrite", "texto", "ollama")
	if k1 == k3 {
		t.Error("Expected different inputs to produce different keys")
	}
}

func TestKey_PartBoundaries(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not collide
	if Key("k", "ab", "c") == Key("k", "a", "bc") {
		t.Error("Expected part boundaries to affect the key")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	val, found := c.Get("k")
	if !found {
		t.Fatal("Expected to find cached value")
	}
	if string(val) != "v" {
		t.Errorf("Expected 'v', got %q", val)
	}

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set(Key("test", "k"), []byte("hola"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	val, found := c.Get(Key("test", "k"))
	if !found {
		t.Fatal("Expected disk hit")
	}
	if string(val) != "hola" {
		t.Errorf("Expected 'hola', got %q", val)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	// Write through, then clear memory only
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	_ = c.memory.Clear()

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Expected disk fallback to return value, got %q found=%v", val, found)
	}

	// Now it must be back in memory
	if _, found := c.memory.Get("k"); !found {
		t.Error("Expected disk hit to be promoted to memory")
	}
}
