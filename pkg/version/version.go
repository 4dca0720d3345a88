// Package version carries the plugin version and the framework API
// level it targets.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the plugin release version.
const Version = "0.2.0"

// APIRequires is the minimum framework device-API version the plugin
// supports.
const APIRequires = "0.2.0"

// SemVer is a parsed "major.minor.patch" version.
type SemVer struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" version string.
func Parse(s string) (SemVer, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return SemVer{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	nums := make([]uint16, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil || p == "" {
			return SemVer{}, fmt.Errorf("invalid version %q: bad component %q", s, p)
		}
		nums[i] = uint16(n)
	}
	return SemVer{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version as "major.minor.patch".
func (v SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether v is the same or a later version than other.
func (v SemVer) AtLeast(other SemVer) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor > other.Minor
	}
	return v.Patch >= other.Patch
}

// Compatible reports whether a framework at apiVersion can host this
// plugin: same major series, at or above APIRequires.
func Compatible(apiVersion string) (bool, error) {
	api, err := Parse(apiVersion)
	if err != nil {
		return false, err
	}
	req, err := Parse(APIRequires)
	if err != nil {
		return false, err
	}
	return api.Major == req.Major && api.AtLeast(req), nil
}
