package manager

import (
	"regexp"
	"strings"
)

// Version token shapes. The strict form is what most tools print in their
// list output; the loose form additionally accepts partial versions such as
// "20" or "20.11" that show up in pin files and alias listings.
var (
	strictVersionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	looseVersionRe  = regexp.MustCompile(`^\d+(\.\d+){0,2}$`)
)

// Markers stripped from tool list output before a token is considered.
// "*" and "->" flag the current version, "default" is an nvm alias suffix,
// "v" and "node@" are version prefixes.
var lineMarkers = []string{"*", "->"}

var tokenPrefixes = []string{"node@", "v"}

// Normalize strips a leading "v" and surrounding whitespace from a version
// token. It is idempotent.
func Normalize(version string) string {
	v := strings.TrimSpace(version)
	v = strings.TrimPrefix(v, "v")
	return strings.TrimSpace(v)
}

// IsStrictVersion reports whether v is a full MAJOR.MINOR.PATCH token.
func IsStrictVersion(v string) bool {
	return strictVersionRe.MatchString(v)
}

// IsLooseVersion reports whether v is MAJOR[.MINOR[.PATCH]].
func IsLooseVersion(v string) bool {
	return looseVersionRe.MatchString(v)
}

// IsVersionMatching reports whether the pinned version is satisfied by the
// current one. The match is a prefix match at a dot boundary so that an
// under-specified pin ("20") does not force a switch away from "20.10.0",
// while "20.11" is still distinct from "20.10.0".
func IsVersionMatching(pin, current string) bool {
	pin = Normalize(pin)
	current = Normalize(current)
	if pin == "" || current == "" {
		return false
	}
	if pin == current {
		return true
	}
	return strings.HasPrefix(current, pin+".")
}

// VersionFromToken strips known prefixes from a single token and returns
// the normalized version, or "" when the token is not a version.
func VersionFromToken(token string) string {
	tok := strings.TrimSpace(token)
	for _, p := range tokenPrefixes {
		tok = strings.TrimPrefix(tok, p)
	}
	tok = strings.TrimSuffix(tok, ",")
	if !looseVersionRe.MatchString(tok) {
		return ""
	}
	return tok
}

// versionFromLine extracts the first version token from one line of tool
// output, after stripping current markers. Returns "" for non-version lines
// (headers, aliases, blank lines), which callers discard silently.
func versionFromLine(line string) string {
	for _, m := range lineMarkers {
		line = strings.ReplaceAll(line, m, " ")
	}
	for _, field := range strings.Fields(line) {
		if field == "default" || field == "system" {
			continue
		}
		if v := VersionFromToken(field); v != "" {
			return v
		}
	}
	return ""
}

// ParseVersionLines turns raw list output into a deduplicated slice of
// normalized version strings, preserving first-occurrence order. Lines that
// do not contain a version token are skipped, never treated as errors.
func ParseVersionLines(raw string) []string {
	seen := make(map[string]bool)
	versions := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		v := versionFromLine(line)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		versions = append(versions, v)
	}
	return versions
}

// CurrentFromLines returns the version on the first line carrying the given
// current marker ("*" or "->"), or "" when no line matches.
func CurrentFromLines(raw, marker string) string {
	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, marker) {
			continue
		}
		if v := versionFromLine(line); v != "" {
			return v
		}
	}
	return ""
}
