// Package buildid extracts GNU build identifiers from debug-symbol files.
package buildid

import (
	"context"
	"regexp"

	"github.com/dsymtools/buildlink/pkg/types"
)

// Source is the capability of reporting a file's build identifier.
// The shipped implementation shells out to readelf; anything able to
// answer "what is this file's build ID" can stand in for it in tests.
type Source interface {
	// Extract returns the file's build identifier. The boolean is false
	// when the file carries no identifier, which is not an error.
	Extract(ctx context.Context, path string) (types.BuildID, bool, error)
}

// idPattern matches a human-readable note line such as
// "    Build ID: ab14fd9fca33b9f5a5000bcac66ee7f8b1e8d5f5".
// The identifier splits into a 2-hex-char prefix and the remainder;
// a single optional separating space between the two is tolerated.
var idPattern = regexp.MustCompile(`Build ID:\s*([0-9a-fA-F]{2})\s?([0-9a-fA-F]+)`)

// ParseLine scans one line of introspection output for a build identifier.
func ParseLine(line string) (types.BuildID, bool) {
	m := idPattern.FindStringSubmatch(line)
	if m == nil {
		return types.BuildID{}, false
	}
	return types.BuildID{Prefix: m[1], Rest: m[2]}, true
}
