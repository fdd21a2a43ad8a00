package schema

import (
	"strconv"
)

// Version is an optional integer version of a root schema.
// The zero value is Unversioned.
type Version struct {
	n   int
	set bool
}

// Unversioned is the "any version" bucket.
var Unversioned = Version{}

// V returns a set version.
func V(n int) Version {
	return Version{n: n, set: true}
}

// Number returns the version number and whether it is set.
func (v Version) Number() (int, bool) {
	return v.n, v.set
}

func (v Version) IsSet() bool {
	return v.set
}

func (v Version) String() string {
	if !v.set {
		return "unversioned"
	}
	return "v" + strconv.Itoa(v.n)
}

// Segment is the `$id` path part: "v2/" or empty.
func (v Version) Segment() string {
	if !v.set {
		return ""
	}
	return v.String() + "/"
}

// Less orders unversioned first, then by number.
func (v Version) Less(other Version) bool {
	if v.set != other.set {
		return !v.set
	}
	return v.n < other.n
}

// ParseVersion parses "2", "v2" or an empty string (unversioned).
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Unversioned, nil
	}
	if s[0] == 'v' {
		s = s[1:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Unversioned, ErrInvalidVersion
	}
	return V(n), nil
}
