package summarize

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestInflightGuardAcquireAndRelease(t *testing.T) {
	g := newInflightGuard()

	if !g.acquire("art_abc123") {
		t.Fatal("first acquire should succeed")
	}

	g.release("art_abc123")

	if !g.acquire("art_abc123") {
		t.Error("acquire after release should succeed")
	}
}

func TestInflightGuardRejectsDuplicate(t *testing.T) {
	g := newInflightGuard()

	if !g.acquire("art_abc123") {
		t.Fatal("first acquire should succeed")
	}
	if g.acquire("art_abc123") {
		t.Error("second acquire for same ID should fail")
	}

	// A different article is unaffected.
	if !g.acquire("art_def456") {
		t.Error("acquire for a different ID should succeed")
	}
}

func TestInflightGuardReleaseUnknown(t *testing.T) {
	g := newInflightGuard()
	// Should not panic.
	g.release("art_nonexistent")
}

func TestInflightGuardConcurrentAccess(t *testing.T) {
	g := newInflightGuard()
	const goroutines = 100

	// All goroutines race to acquire the same ID; exactly one must win.
	var wins atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.acquire("art_contended") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("expected exactly 1 winner, got %d", wins.Load())
	}

	// Distinct IDs do not contend.
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if !g.acquire(id) {
				t.Errorf("acquire(%q) should succeed", id)
			}
		}(fmt.Sprintf("art_%03d", i))
	}
	wg.Wait()
}
