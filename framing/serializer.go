package framing

import "github.com/rotisserie/eris"

// ErrUnknownFrameType is a soft decode-time condition: a type code outside
// 0x00..0x06 decodes to UNDEFINED without raising (§7); callers that reach
// UNDEFINED in a context requiring a known type construct this instead.
var ErrUnknownFrameType = eris.New("framing: unknown frame type")

// Serializer encodes and decodes every frame variant for one wire protocol
// version. Implementations hold their own mutable configuration
// (PreallocateFrameSizeField) and are not required to be safe for concurrent
// use (§5).
type Serializer interface {
	ProtocolVersion() ProtocolVersion

	// FrameLengthFieldSize is the number of headroom bytes this version
	// reserves for the transport's length prefix.
	FrameLengthFieldSize() int

	// PreallocateFrameSizeField reports whether encoders currently reserve
	// that headroom.
	PreallocateFrameSizeField() bool
	SetPreallocateFrameSizeField(bool)

	// PeekFrameType reads the frame type without consuming buf. It returns
	// UNDEFINED on truncation or an unrecognized code.
	PeekFrameType(buf ByteChain) FrameType

	// PeekStreamID reads the stream id without consuming buf. The boolean is
	// false on truncation or a negative wire value.
	PeekStreamID(buf ByteChain) (StreamID, bool)

	// DetectProtocolVersion inspects the first frame of a connection,
	// skipping skipBytes first, and returns the declared version or
	// ProtocolVersionUnknown (§4.5.1).
	DetectProtocolVersion(buf ByteChain, skipBytes int) ProtocolVersion

	SerializeBrokerSetup(f *BrokerSetupFrame) (ByteChain, error)
	DeserializeBrokerSetup(buf ByteChain) (*BrokerSetupFrame, error)

	SerializeDestinationSetup(f *DestinationSetupFrame) (ByteChain, error)
	DeserializeDestinationSetup(buf ByteChain) (*DestinationSetupFrame, error)

	SerializeDestination(f *DestinationFrame) (ByteChain, error)
	DeserializeDestination(buf ByteChain) (*DestinationFrame, error)

	SerializeGroup(f *GroupFrame) (ByteChain, error)
	DeserializeGroup(buf ByteChain) (*GroupFrame, error)

	SerializeBroadcast(f *BroadcastFrame) (ByteChain, error)
	DeserializeBroadcast(buf ByteChain) (*BroadcastFrame, error)

	SerializeShard(f *ShardFrame) (ByteChain, error)
	DeserializeShard(buf ByteChain) (*ShardFrame, error)
}

// frameSerializerV1_0FrameLengthFieldSize is the v1.0 length-prefix size:
// 3 bytes, matching the 24-bit length the payload codec also uses.
const frameSerializerV1_0FrameLengthFieldSize = 3

// minBytesForAutodetection is the minimum buffer length DetectProtocolVersion
// needs to read stream id, type, flags, and version (§4.5.1).
const minBytesForAutodetection = 10

// setupTypeCode and resumeTypeCode are the raw wire byte values
// DetectProtocolVersion checks for, kept as untyped wire bytes rather than
// FrameType members: 0x0D is not a FrameType at all (§9 Open Questions),
// it is the historical v0 broker-setup-with-resume prelude byte.
const (
	setupTypeCode  = 0x01
	resumeTypeCode = 0x0D
)

// FrameSerializerV1_0 implements Serializer for protocol version 1.0.
type FrameSerializerV1_0 struct {
	preallocate bool
}

// NewFrameSerializerV1_0 returns a v1.0 serializer with preallocation
// disabled by default.
func NewFrameSerializerV1_0() *FrameSerializerV1_0 {
	return &FrameSerializerV1_0{}
}

func (s *FrameSerializerV1_0) ProtocolVersion() ProtocolVersion { return ProtocolVersionLatest }

func (s *FrameSerializerV1_0) FrameLengthFieldSize() int { return frameSerializerV1_0FrameLengthFieldSize }

func (s *FrameSerializerV1_0) PreallocateFrameSizeField() bool { return s.preallocate }

func (s *FrameSerializerV1_0) SetPreallocateFrameSizeField(v bool) { s.preallocate = v }

// headroom returns the reserved-headroom byte count for the current
// PreallocateFrameSizeField setting.
func (s *FrameSerializerV1_0) headroom() int {
	if s.preallocate {
		return s.FrameLengthFieldSize()
	}
	return 0
}

func (s *FrameSerializerV1_0) PeekFrameType(buf ByteChain) FrameType {
	c := NewCursor(buf)
	if err := c.Skip(4); err != nil {
		return FrameTypeUndefined
	}
	b, err := c.ReadUint8()
	if err != nil {
		return FrameTypeUndefined
	}
	return normalizeFrameType(b >> 2)
}

func (s *FrameSerializerV1_0) PeekStreamID(buf ByteChain) (StreamID, bool) {
	c := NewCursor(buf)
	sid, err := c.ReadInt32()
	if err != nil || sid < 0 {
		return 0, false
	}
	return StreamID(sid), true
}

func (s *FrameSerializerV1_0) DetectProtocolVersion(buf ByteChain, skipBytes int) ProtocolVersion {
	c := NewCursor(buf)
	if err := c.Skip(skipBytes); err != nil {
		return ProtocolVersionUnknown
	}
	if c.TotalRemaining() < minBytesForAutodetection {
		return ProtocolVersionUnknown
	}
	streamID, err := c.ReadInt32()
	if err != nil || streamID != 0 {
		return ProtocolVersionUnknown
	}
	typeByte, err := c.ReadUint8()
	if err != nil {
		return ProtocolVersionUnknown
	}
	typeCode := typeByte >> 2
	if typeCode != setupTypeCode && typeCode != resumeTypeCode {
		return ProtocolVersionUnknown
	}
	if _, err := c.ReadUint8(); err != nil { // flags low byte, unused
		return ProtocolVersionUnknown
	}
	major, err := c.ReadUint16()
	if err != nil {
		return ProtocolVersionUnknown
	}
	minor, err := c.ReadUint16()
	if err != nil {
		return ProtocolVersionUnknown
	}
	candidate := ProtocolVersion{Major: major, Minor: minor}
	if candidate != s.ProtocolVersion() {
		return ProtocolVersionUnknown
	}
	return candidate
}

func (s *FrameSerializerV1_0) SerializeBrokerSetup(f *BrokerSetupFrame) (ByteChain, error) {
	a := NewAppender(HeaderSize+4, s.headroom())
	EncodeHeader(a, f.Header)
	a.WriteInt32(f.RequestN)
	return a.Finish(), nil
}

func (s *FrameSerializerV1_0) DeserializeBrokerSetup(buf ByteChain) (*BrokerSetupFrame, error) {
	c := NewCursor(buf)
	header, err := DecodeHeader(&c)
	if err != nil {
		return nil, err
	}
	requestN, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	if requestN <= 0 {
		return nil, eris.Wrapf(ErrInvalidArgument, "decoded broker setup requestN %d is not positive", requestN)
	}
	return &BrokerSetupFrame{Header: header, RequestN: requestN}, nil
}

func (s *FrameSerializerV1_0) SerializeDestinationSetup(f *DestinationSetupFrame) (ByteChain, error) {
	a := NewAppender(HeaderSize+3, s.headroom())
	EncodeHeader(a, f.Header)
	if err := EncodePayload(a, f.Payload, f.Header.Flags.IsMetadata()); err != nil {
		return nil, err
	}
	return a.Finish(), nil
}

func (s *FrameSerializerV1_0) DeserializeDestinationSetup(buf ByteChain) (*DestinationSetupFrame, error) {
	c := NewCursor(buf)
	header, err := DecodeHeader(&c)
	if err != nil {
		return nil, err
	}
	payload, err := DecodePayload(&c, header.Flags.IsMetadata())
	if err != nil {
		return nil, err
	}
	return &DestinationSetupFrame{Header: header, Payload: payload}, nil
}

func (s *FrameSerializerV1_0) SerializeDestination(f *DestinationFrame) (ByteChain, error) {
	a := NewAppender(HeaderSize+3, s.headroom())
	EncodeHeader(a, f.Header)
	if err := EncodePayload(a, f.Payload, f.Header.Flags.IsMetadata()); err != nil {
		return nil, err
	}
	return a.Finish(), nil
}

func (s *FrameSerializerV1_0) DeserializeDestination(buf ByteChain) (*DestinationFrame, error) {
	c := NewCursor(buf)
	header, err := DecodeHeader(&c)
	if err != nil {
		return nil, err
	}
	payload, err := DecodePayload(&c, header.Flags.IsMetadata())
	if err != nil {
		return nil, err
	}
	return &DestinationFrame{Header: header, Payload: payload}, nil
}

func (s *FrameSerializerV1_0) SerializeGroup(f *GroupFrame) (ByteChain, error) {
	a := NewAppender(HeaderSize, s.headroom())
	EncodeHeader(a, f.Header)
	a.Insert(f.Metadata)
	return a.Finish(), nil
}

func (s *FrameSerializerV1_0) DeserializeGroup(buf ByteChain) (*GroupFrame, error) {
	c := NewCursor(buf)
	header, err := DecodeHeader(&c)
	if err != nil {
		return nil, err
	}
	metadata := c.RemainderAsChain()
	if metadata.Len() == 0 {
		return nil, eris.Wrap(ErrInvalidArgument, "group frame body is empty")
	}
	return &GroupFrame{Header: header, Metadata: metadata}, nil
}

func (s *FrameSerializerV1_0) SerializeBroadcast(f *BroadcastFrame) (ByteChain, error) {
	a := NewAppender(HeaderSize, s.headroom())
	EncodeHeader(a, f.Header)
	return a.Finish(), nil
}

func (s *FrameSerializerV1_0) DeserializeBroadcast(buf ByteChain) (*BroadcastFrame, error) {
	c := NewCursor(buf)
	header, err := DecodeHeader(&c)
	if err != nil {
		return nil, err
	}
	return &BroadcastFrame{Header: header}, nil
}

func (s *FrameSerializerV1_0) SerializeShard(f *ShardFrame) (ByteChain, error) {
	a := NewAppender(HeaderSize, s.headroom())
	EncodeHeader(a, f.Header)
	return a.Finish(), nil
}

func (s *FrameSerializerV1_0) DeserializeShard(buf ByteChain) (*ShardFrame, error) {
	c := NewCursor(buf)
	header, err := DecodeHeader(&c)
	if err != nil {
		return nil, err
	}
	return &ShardFrame{Header: header}, nil
}
