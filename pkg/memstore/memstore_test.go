package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetLookupDel(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if _, found, _ := s.Lookup(ctx, "k"); found {
		t.Fatal("expected empty store")
	}
	if err := s.Set(ctx, "k", "[]", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, found, err := s.Lookup(ctx, "k")
	if err != nil || !found || value != "[]" {
		t.Fatalf("unexpected lookup value=%q found=%v err=%v", value, found, err)
	}
	if err := s.Del(ctx, "k", "missing"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, found, _ := s.Lookup(ctx, "k"); found {
		t.Fatal("expected key to be removed")
	}
}

func TestExpiredEntryReadsAsMissing(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", 20*time.Millisecond))
	_, found, _ := s.Lookup(ctx, "k")
	require.True(t, found)

	require.Eventually(t, func() bool {
		_, found, _ := s.Lookup(ctx, "k")
		return !found
	}, time.Second, 5*time.Millisecond)
}

func TestWriteAfterExpirySurvives(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "stale", 10*time.Millisecond))
	require.Eventually(t, func() bool {
		_, found, _ := s.Lookup(ctx, "k")
		return !found
	}, time.Second, 2*time.Millisecond)

	require.NoError(t, s.Set(ctx, "k", "fresh", 0))
	// give the eviction loop a chance to run against the replaced entry
	time.Sleep(30 * time.Millisecond)

	value, found, err := s.Lookup(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "fresh", value)
}

func TestConcurrentWritesAroundExpiry(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_ = s.Set(ctx, "k", fmt.Sprintf("%d-%d", w, i), time.Millisecond)
				_, _, _ = s.Lookup(ctx, "k")
			}
		}(w)
	}
	wg.Wait()

	require.NoError(t, s.Set(ctx, "k", "final", 0))
	value, found, _ := s.Lookup(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, "final", value)
}

func TestExpiredEntriesAreEvicted(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		require.NoError(t, s.Set(ctx, fmt.Sprintf("museumCartV1:v%d", i), "[]", 20*time.Millisecond))
	}
	require.NoError(t, s.Set(ctx, "museumCartV1:kept", "[]", 0))

	require.Eventually(t, func() bool {
		return s.cache.Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, found, _ := s.Lookup(ctx, "museumCartV1:kept")
	assert.True(t, found)
}
