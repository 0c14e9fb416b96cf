// Package nodeindex retrieves and queries the Node.js release index
// (the dist/index.json feed on nodejs.org). It backs remote listings for
// tools that cannot list releases themselves.
package nodeindex

import (
	"context"

	"github.com/tidwall/gjson"
)

// Release is one entry of the release index.
type Release struct {
	Version string `json:"version"`
	LTS     string `json:"lts,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Source is the interface for retrieving the release index from various
// backends. Implementations include remote HTTP and a caching wrapper.
type Source interface {
	// Releases retrieves the full release index, newest entries first as
	// published by the feed.
	Releases(ctx context.Context) ([]Release, error)
}

// parseIndex decodes the raw index feed. The lts field is false for
// non-LTS releases and a codename string for LTS ones, so decoding goes
// through gjson rather than a fixed struct.
func parseIndex(data []byte) []Release {
	entries := gjson.ParseBytes(data).Array()
	releases := make([]Release, 0, len(entries))
	for _, e := range entries {
		version := e.Get("version").String()
		if version == "" {
			continue
		}
		r := Release{Version: version, Date: e.Get("date").String()}
		if lts := e.Get("lts"); lts.Type == gjson.String {
			r.LTS = lts.String()
		}
		releases = append(releases, r)
	}
	return releases
}
