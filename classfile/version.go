package classfile

import "fmt"

const (
	MinMajorVersion = 45
	MaxMajorVersion = 52

	// Class files older than 45.3 use narrower Code attribute fields.
	minMinorVersion45 = 3
)

var releaseNames = map[uint16]string{
	45: "1.1",
	46: "1.2",
	47: "1.3",
	48: "1.4",
	49: "5",
	50: "6",
	51: "7",
	52: "8",
}

type Version struct {
	Major uint16
	Minor uint16
}

// NewVersion validates a major/minor pair against the supported range.
func NewVersion(major, minor uint16) (Version, error) {
	v := Version{Major: major, Minor: minor}
	if !v.Supported() {
		return Version{}, &UnsupportedVersionError{Major: major, Minor: minor}
	}
	return v, nil
}

func (v Version) Supported() bool {
	switch {
	case v.Major == MinMajorVersion:
		return v.Minor >= minMinorVersion45
	case v.Major > MinMajorVersion && v.Major <= MaxMajorVersion:
		return v.Minor == 0
	default:
		return false
	}
}

// Name is the platform release that introduced this version, e.g. "8".
func (v Version) Name() string {
	return releaseNames[v.Major]
}

func (v Version) String() string {
	if name := v.Name(); name != "" {
		return fmt.Sprintf("%d.%d (Java %s)", v.Major, v.Minor, name)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
