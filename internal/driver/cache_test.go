package driver

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "very"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := HashText("module m;\nendmodule\n")
	in := CachePayload{
		Schema:    diskCacheSchemaVersion,
		Modules:   []string{"m"},
		DiagCount: 0,
		Clean:     true,
	}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CachePayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("payload = %+v, want %+v", out, in)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "very"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	var out CachePayload
	hit, err := cache.Get(HashText("never stored"), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("expected a miss for an unknown key")
	}
}

func TestDiskCacheDistinctKeys(t *testing.T) {
	a := HashText("module a;\nendmodule\n")
	b := HashText("module b;\nendmodule\n")
	if a == b {
		t.Fatal("different texts must hash to different keys")
	}
	if a != HashText("module a;\nendmodule\n") {
		t.Fatal("hashing must be deterministic")
	}
}

func TestDiskCacheNilReceiver(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{}, &CachePayload{}); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	hit, err := cache.Get(Digest{}, &CachePayload{})
	if err != nil || hit {
		t.Errorf("nil Get = (%v, %v), want miss", hit, err)
	}
}
