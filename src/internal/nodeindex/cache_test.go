package nodeindex

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

// countingSource records how often the underlying feed is hit.
type countingSource struct {
	releases []Release
	err      error
	calls    int
}

func (c *countingSource) Releases(context.Context) ([]Release, error) {
	c.calls++
	return c.releases, c.err
}

func TestCachedSource_SecondReadServedFromCache(t *testing.T) {
	upstream := &countingSource{releases: []Release{{Version: "v20.10.0", LTS: "Iron"}}}
	cached := NewCachedSource(upstream, t.TempDir(), time.Hour)

	for i := 0; i < 2; i++ {
		releases, err := cached.Releases(context.Background())
		if err != nil {
			t.Fatalf("Releases() call %d error = %v", i, err)
		}
		if len(releases) != 1 || releases[0].Version != "v20.10.0" {
			t.Fatalf("Releases() call %d = %v", i, releases)
		}
	}

	if upstream.calls != 1 {
		t.Errorf("upstream hit %d times, want 1", upstream.calls)
	}
}

func TestCachedSource_ExpiredCacheRefetches(t *testing.T) {
	upstream := &countingSource{releases: []Release{{Version: "v20.10.0"}}}
	cached := NewCachedSource(upstream, t.TempDir(), time.Nanosecond)

	if _, err := cached.Releases(context.Background()); err != nil {
		t.Fatalf("first Releases() error = %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := cached.Releases(context.Background()); err != nil {
		t.Fatalf("second Releases() error = %v", err)
	}

	if upstream.calls != 2 {
		t.Errorf("upstream hit %d times, want 2 after expiry", upstream.calls)
	}
}

func TestCachedSource_ForceRefreshBypassesCache(t *testing.T) {
	upstream := &countingSource{releases: []Release{{Version: "v20.10.0"}}}
	cached := NewCachedSource(upstream, t.TempDir(), time.Hour)

	if _, err := cached.Releases(context.Background()); err != nil {
		t.Fatalf("Releases() error = %v", err)
	}
	if _, err := cached.ForceRefresh(context.Background()); err != nil {
		t.Fatalf("ForceRefresh() error = %v", err)
	}

	if upstream.calls != 2 {
		t.Errorf("upstream hit %d times, want 2", upstream.calls)
	}
}

func TestCachedSource_UpstreamFailurePropagates(t *testing.T) {
	upstream := &countingSource{err: errors.New("offline")}
	cached := NewCachedSource(upstream, t.TempDir(), time.Hour)

	if _, err := cached.Releases(context.Background()); err == nil {
		t.Error("Releases() should propagate upstream failure with no cache")
	}
}

func TestCachedSource_ClearCacheIsIdempotent(t *testing.T) {
	cached := NewCachedSource(&countingSource{}, t.TempDir(), time.Hour)

	if err := cached.ClearCache(); err != nil {
		t.Errorf("ClearCache() on empty dir error = %v", err)
	}
}
