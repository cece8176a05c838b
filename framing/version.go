package framing

import "fmt"

// ProtocolVersion is a (major, minor) pair identifying a wire format.
type ProtocolVersion struct {
	Major uint16
	Minor uint16
}

// ProtocolVersionUnknown is the sentinel returned when autodetection fails
// to recognize a compatible version.
var ProtocolVersionUnknown = ProtocolVersion{Major: 0xFFFF, Minor: 0xFFFF}

// ProtocolVersionLatest is the newest version this package implements.
var ProtocolVersionLatest = ProtocolVersion{Major: 1, Minor: 0}

// IsUnknown reports whether v is the Unknown sentinel.
func (v ProtocolVersion) IsUnknown() bool { return v == ProtocolVersionUnknown }

func (v ProtocolVersion) String() string {
	if v.IsUnknown() {
		return "unknown"
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
