package nodeindex

import (
	"context"
	"testing"
)

type staticSource []Release

func (s staticSource) Releases(context.Context) ([]Release, error) { return s, nil }

var unsortedFeed = staticSource{
	{Version: "v18.19.0", LTS: "Hydrogen"},
	{Version: "v21.5.0"},
	{Version: "v20.9.0", LTS: "Iron"},
	{Version: "v20.10.0", LTS: "Iron"},
	{Version: "not-a-version"},
}

func TestIndex_LatestSortsNewestFirst(t *testing.T) {
	idx := New(unsortedFeed)

	got, err := idx.Latest(context.Background(), 0)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}

	want := []string{"21.5.0", "20.10.0", "20.9.0", "18.19.0"}
	if len(got) != len(want) {
		t.Fatalf("Latest() returned %d entries, want %d", len(got), len(want))
	}
	for i, v := range want {
		if got[i].Version != v {
			t.Errorf("entry %d = %q, want %q", i, got[i].Version, v)
		}
	}
}

func TestIndex_LatestLTSFiltersAndCarriesCodename(t *testing.T) {
	idx := New(unsortedFeed)

	got, err := idx.LatestLTS(context.Background(), 0)
	if err != nil {
		t.Fatalf("LatestLTS() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("LatestLTS() returned %d entries, want 3", len(got))
	}
	if got[0].Version != "20.10.0" || got[0].LTS != "Iron" {
		t.Errorf("newest LTS = %+v, want 20.10.0 Iron", got[0])
	}
}

func TestIndex_LimitCapsResults(t *testing.T) {
	idx := New(unsortedFeed)

	got, err := idx.Latest(context.Background(), 2)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Latest(2) returned %d entries, want 2", len(got))
	}
}
