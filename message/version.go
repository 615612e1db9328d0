package message

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Version is a protocol version. [Major, Minor]
type Version [2]uint

var Version11 = Version{1, 1}

// ParseVersion parses protocol version text (e.g. "1.1") into [Version].
func ParseVersion(s string) (Version, error) {
	first, second, found := strings.Cut(s, ".")
	if !found {
		return Version{}, errors.Errorf("dot seperator not found on version: %s", s)
	}

	major, err := strconv.ParseUint(first, 10, 8)
	if err != nil {
		return Version{}, errors.Wrap(err, "parsing major version")
	}
	minor, err := strconv.ParseUint(second, 10, 8)
	if err != nil {
		return Version{}, errors.Wrap(err, "parsing minor version")
	}

	return Version{uint(major), uint(minor)}, nil
}

func (v Version) String() string {
	return strconv.FormatUint(uint64(v[0]), 10) + "." + strconv.FormatUint(uint64(v[1]), 10)
}
