package framing

import "github.com/rotisserie/eris"

// FrameType identifies the kind of a frame. Only the low 6 bits travel on
// the wire; any decoded value above 0x06 collapses to UNDEFINED rather than
// failing, matching the original serializer's fromByte behavior.
type FrameType uint8

const (
	FrameTypeUndefined FrameType = 0x00
	FrameTypeBrokerSetup FrameType = 0x01
	FrameTypeDestinationSetup FrameType = 0x02
	FrameTypeDestination FrameType = 0x03
	FrameTypeGroup FrameType = 0x04
	FrameTypeBroadcast FrameType = 0x05
	FrameTypeShard FrameType = 0x06
)

// normalizeFrameType clamps any wire value above 0x06 to UNDEFINED, per
// original_source/proteus/framing/FrameType.cpp's fromByte.
func normalizeFrameType(v uint8) FrameType {
	if v > 0x06 {
		return FrameTypeUndefined
	}
	return FrameType(v)
}

// StreamID is a non-negative 31-bit stream identifier. 0 denotes a
// connection-scoped frame.
type StreamID uint32

// ErrNegativeStreamID is returned when the wire's signed stream-id field
// decodes to a negative value.
var ErrNegativeStreamID = eris.New("framing: stream id is negative on the wire")

// ErrInvalidStreamScope reports a header whose stream id doesn't match the
// connection-scoped/stream-scoped requirement for its frame kind (H1).
var ErrInvalidStreamScope = eris.New("framing: stream id does not match frame scope")

// FrameHeader is the fixed 6-byte prefix of every frame: a packed type/flags
// word preceded by a signed big-endian stream id.
type FrameHeader struct {
	Type     FrameType
	Flags    FrameFlags
	StreamID StreamID
}

// HeaderSize is the wire size of FrameHeader in bytes (§4.2).
const HeaderSize = 6

// EncodeHeader writes the header to a: a signed 32-bit big-endian stream id,
// followed by a byte packing the 6-bit type and the top 2 flag bits, followed
// by the bottom 8 flag bits.
func EncodeHeader(a *Appender, h FrameHeader) {
	a.WriteInt32(int32(h.StreamID))
	a.WriteUint8(byte(h.Type)<<2 | byte(h.Flags>>8))
	a.WriteUint8(byte(h.Flags & 0xFF))
}

// DecodeHeader reads a FrameHeader from c, rejecting a negative stream id and
// clamping unrecognized type codes to UNDEFINED.
func DecodeHeader(c *Cursor) (FrameHeader, error) {
	sid, err := c.ReadInt32()
	if err != nil {
		return FrameHeader{}, err
	}
	if sid < 0 {
		return FrameHeader{}, ErrNegativeStreamID
	}
	b0, err := c.ReadUint8()
	if err != nil {
		return FrameHeader{}, err
	}
	b1, err := c.ReadUint8()
	if err != nil {
		return FrameHeader{}, err
	}
	h := FrameHeader{
		Type:     normalizeFrameType(b0 >> 2),
		Flags:    FrameFlags(uint16(b0&0x3)<<8 | uint16(b1)),
		StreamID: StreamID(sid),
	}
	return h, nil
}

// isConnectionScoped reports whether frames of type t always carry
// streamId == 0 (H1).
func isConnectionScoped(t FrameType) bool {
	switch t {
	case FrameTypeBrokerSetup, FrameTypeGroup:
		return true
	default:
		return false
	}
}

// checkStreamScope enforces invariant H1: connection-scoped frame kinds
// must carry streamId 0, all others must carry a positive stream id.
func checkStreamScope(t FrameType, sid StreamID) error {
	if isConnectionScoped(t) {
		if sid != 0 {
			return eris.Wrapf(ErrInvalidStreamScope, "%s frames must use stream id 0, got %d", t, sid)
		}
		return nil
	}
	if sid == 0 {
		return eris.Wrapf(ErrInvalidStreamScope, "%s frames require a positive stream id", t)
	}
	return nil
}
