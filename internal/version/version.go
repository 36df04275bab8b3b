// Package version exposes the version of the knowledge hub.
package version

import (
	_ "embed" // for go:embed
	"strconv"
	"strings"
)

// VERSION holds the server's version
//
//go:embed VERSION
var VERSION string

// Version segments
var (
	MAJOR int
	MINOR int
	FIX   int
	PRE   int
)

func init() {
	VERSION = strings.TrimSpace(VERSION)
	MAJOR, MINOR, FIX, PRE = parse(VERSION)
}

// parse splits a version of the form MAJOR.MINOR.FIX[-prN]; missing or
// malformed segments are 0
func parse(v string) (major, minor, fix, pre int) {
	v = strings.TrimPrefix(v, "v")
	core, preRelease, _ := strings.Cut(v, "-")
	segments := strings.SplitN(core, ".", 3)
	ints := make([]int, 3)
	for i, s := range segments {
		ints[i], _ = strconv.Atoi(s)
	}
	if preRelease != "" {
		pre, _ = strconv.Atoi(strings.TrimPrefix(preRelease, "pr"))
	}
	return ints[0], ints[1], ints[2], pre
}

// UserAgent returns the User-Agent used for outgoing requests
func UserAgent() string {
	return "knowledgehub/" + VERSION
}
