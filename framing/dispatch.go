package framing

import "github.com/rotisserie/eris"

// ErrVersionMismatch is returned when no known serializer can handle a
// requested or autodetected protocol version.
var ErrVersionMismatch = eris.New("framing: no compatible serializer")

// knownSerializerFactories builds every serializer this package implements,
// in the order they should be tried for autodetection. Today there is only
// v1.0; future versions register here.
func knownSerializerFactories() []func() Serializer {
	return []func() Serializer{
		func() Serializer { return NewFrameSerializerV1_0() },
	}
}

// Create returns a fresh Serializer for the requested protocol version, or
// ErrVersionMismatch if no implementation supports it.
func Create(version ProtocolVersion) (Serializer, error) {
	for _, factory := range knownSerializerFactories() {
		s := factory()
		if s.ProtocolVersion() == version {
			return s, nil
		}
	}
	return nil, eris.Wrapf(ErrVersionMismatch, "no serializer for protocol version %s", version)
}

// CreateAutodetected tries every known serializer's DetectProtocolVersion
// against the first frame of a connection and returns the first one that
// recognizes it.
func CreateAutodetected(firstFrame ByteChain) (Serializer, error) {
	for _, factory := range knownSerializerFactories() {
		s := factory()
		if v := s.DetectProtocolVersion(firstFrame, 0); !v.IsUnknown() {
			return s, nil
		}
	}
	return nil, eris.Wrap(ErrVersionMismatch, "autodetection found no compatible serializer")
}
