package collection_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-churchsite/internal/collection"
)

func TestCacheLoadsOnce(t *testing.T) {
	var calls int32
	cache := collection.New(func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"a", "b"}, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		items, err := cache.Get(ctx)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items got %d", len(items))
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single load, got %d", got)
	}
	if !cache.Loaded() {
		t.Fatal("expected cache to report loaded")
	}
}

func TestCacheConcurrentFirstAccessSharesOneLoad(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	cache := collection.New(func(ctx context.Context) ([]int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []int{1}, nil
	})

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Get(ctx); err != nil {
				t.Errorf("get: %v", err)
			}
		}()
	}

	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single shared load, got %d", got)
	}
}

func TestCacheRetriesAfterFailedLoad(t *testing.T) {
	var calls int32
	cache := collection.New(func(ctx context.Context) ([]string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("transient")
		}
		return []string{"ok"}, nil
	})

	ctx := context.Background()
	if _, err := cache.Get(ctx); err == nil {
		t.Fatal("expected first load to fail")
	}
	if cache.Loaded() {
		t.Fatal("failed load must not mark the cell loaded")
	}

	items, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(items) != 1 || items[0] != "ok" {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestCacheResetForcesReload(t *testing.T) {
	var calls int32
	cache := collection.New(func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"x"}, nil
	})

	ctx := context.Background()
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}

	cache.Reset()
	if cache.Loaded() {
		t.Fatal("expected reset to clear the cell")
	}

	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("get after reset: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected reload after reset, got %d loads", got)
	}
}
