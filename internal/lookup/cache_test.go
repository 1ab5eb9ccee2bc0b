package lookup

import (
	"fmt"
	"testing"
	"time"
)

// testPart 测试用解析结果
func testPart(partNumber string) *ResolvedPart {
	return &ResolvedPart{
		MGC5:         "D1408",
		Region:       "R1",
		PartNumber:   partNumber,
		PartCategory: CategoryStandard,
	}
}

// TestMemoryCache_SetAndGet 测试基本读写
func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(nil)
	defer cache.Close()

	cache.Set("key1", testPart("ADX16694"))

	got, found := cache.Get("key1")
	if !found {
		t.Fatal("Get() should find key1")
	}
	if got.PartNumber != "ADX16694" {
		t.Errorf("Get() part number = %q, want ADX16694", got.PartNumber)
	}
}

// TestMemoryCache_GetMiss 测试未命中
func TestMemoryCache_GetMiss(t *testing.T) {
	cache := NewMemoryCache(nil)
	defer cache.Close()

	_, found := cache.Get("missing")
	if found {
		t.Error("Get() should not find missing key")
	}

	stats := cache.Stats()
	if stats.MissCount != 1 {
		t.Errorf("Stats() miss count = %d, want 1", stats.MissCount)
	}
}

// TestMemoryCache_ReturnsCopy 测试返回副本不影响缓存
func TestMemoryCache_ReturnsCopy(t *testing.T) {
	cache := NewMemoryCache(nil)
	defer cache.Close()

	cache.Set("key1", testPart("ADX16694"))

	got, _ := cache.Get("key1")
	got.PartNumber = "MODIFIED"

	again, _ := cache.Get("key1")
	if again.PartNumber != "ADX16694" {
		t.Errorf("cached data should be immutable, got %q", again.PartNumber)
	}
}

// TestMemoryCache_TTLExpiration 测试 TTL 过期
func TestMemoryCache_TTLExpiration(t *testing.T) {
	cache := NewMemoryCache(&CacheConfig{
		TTL:         50 * time.Millisecond,
		MaxSize:     10,
		CleanupTime: time.Minute,
	})
	defer cache.Close()

	cache.Set("key1", testPart("ADX16694"))

	if _, found := cache.Get("key1"); !found {
		t.Fatal("Get() should find key1 before expiration")
	}

	time.Sleep(80 * time.Millisecond)

	if _, found := cache.Get("key1"); found {
		t.Error("Get() should not find key1 after expiration")
	}
}

// TestMemoryCache_MaxSizeEviction 测试超出容量时淘汰最旧条目
func TestMemoryCache_MaxSizeEviction(t *testing.T) {
	cache := NewMemoryCache(&CacheConfig{
		TTL:         time.Minute,
		MaxSize:     3,
		CleanupTime: time.Minute,
	})
	defer cache.Close()

	for i := 0; i < 3; i++ {
		cache.Set(fmt.Sprintf("key%d", i), testPart(fmt.Sprintf("P%d", i)))
		time.Sleep(time.Millisecond)
	}

	cache.Set("key3", testPart("P3"))

	if _, found := cache.Get("key0"); found {
		t.Error("oldest entry key0 should have been evicted")
	}
	if _, found := cache.Get("key3"); !found {
		t.Error("newest entry key3 should be present")
	}
}

// TestMemoryCache_Clear 测试清空缓存重置统计
func TestMemoryCache_Clear(t *testing.T) {
	cache := NewMemoryCache(nil)
	defer cache.Close()

	cache.Set("key1", testPart("ADX16694"))
	cache.Get("key1")
	cache.Clear()

	stats := cache.Stats()
	if stats.Size != 0 {
		t.Errorf("Stats() size after Clear() = %d, want 0", stats.Size)
	}
	if stats.HitCount != 0 {
		t.Errorf("Stats() hit count after Clear() = %d, want 0", stats.HitCount)
	}
}
