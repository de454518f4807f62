package orabridge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ServerVersion is the connected server's version, the runtime capability
// switch for dialect selection.
type ServerVersion struct {
	Major int
	Minor int
	Raw   string
}

var versionRe = regexp.MustCompile(`(\d+)\.(\d+)(?:[.\d]*)?`)

// ParseServerVersion extracts a version from a banner such as
// "12.2.0.1.0" or "Oracle Database 19c Enterprise Edition 19.3.0.0.0".
func ParseServerVersion(banner string) (ServerVersion, error) {
	m := versionRe.FindStringSubmatch(banner)
	if m == nil {
		return ServerVersion{}, fmt.Errorf("unrecognized server version %q", banner)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	return ServerVersion{Major: major, Minor: minor, Raw: strings.TrimSpace(banner)}, nil
}

// AtLeast reports whether the version is >= major.minor.
func (v ServerVersion) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// SupportsFetchFirst reports whether the server understands the native
// OFFSET/FETCH FIRST row limiting syntax, introduced in 12.1. Older
// servers need the nested ROWNUM pagination rewrite.
func (v ServerVersion) SupportsFetchFirst() bool {
	return v.AtLeast(12, 1)
}

func (v ServerVersion) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
