package nodeindex

import (
	"context"
	"sort"

	goversion "github.com/hashicorp/go-version"

	"github.com/nvman/nvman/src/internal/manager"
)

// Index answers version queries against a release Source. It satisfies
// manager.RemoteIndex.
type Index struct {
	source Source
}

// New creates an Index over the given source.
func New(source Source) *Index {
	return &Index{source: source}
}

// NewDefault creates an Index over the canonical feed with local caching.
func NewDefault() *Index {
	return New(NewCachedSource(NewHTTPSource(""), "", 0))
}

// Latest returns up to n releases, newest first.
func (i *Index) Latest(ctx context.Context, n int) ([]manager.Available, error) {
	return i.query(ctx, n, false)
}

// LatestLTS returns up to n LTS releases, newest first.
func (i *Index) LatestLTS(ctx context.Context, n int) ([]manager.Available, error) {
	return i.query(ctx, n, true)
}

func (i *Index) query(ctx context.Context, n int, ltsOnly bool) ([]manager.Available, error) {
	releases, err := i.source.Releases(ctx)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		parsed    *goversion.Version
		available manager.Available
	}
	candidates := make([]candidate, 0, len(releases))
	for _, r := range releases {
		if ltsOnly && r.LTS == "" {
			continue
		}
		v := manager.Normalize(r.Version)
		if !manager.IsStrictVersion(v) {
			continue
		}
		parsed, err := goversion.NewVersion(v)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			parsed:    parsed,
			available: manager.Available{Version: v, LTS: r.LTS},
		})
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].parsed.GreaterThan(candidates[b].parsed)
	})

	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]manager.Available, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.available)
	}
	return out, nil
}
