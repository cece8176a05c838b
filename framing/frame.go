package framing

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrInvalidArgument is the wrapped base of every construction-time
// validation failure (F1-F3, P1).
var ErrInvalidArgument = eris.New("framing: invalid argument")

// MaxRequestN is the largest legal BROKER_SETUP request count: the platform
// maximum positive signed 32-bit RSocket request-n (original_source's
// kMaxRequestN).
const MaxRequestN int32 = math.MaxInt32

// maskFlags keeps only bits the frame type allows, plus IGNORE, which is
// meaningful on every frame type (§9).
func maskFlags(flags, allowed FrameFlags) FrameFlags {
	return flags & (allowed | FlagIgnore)
}

// BrokerSetupFrame is the connection-scoped frame exchanged at the start of
// a session to negotiate an initial request count.
type BrokerSetupFrame struct {
	Header   FrameHeader
	RequestN int32
}

const brokerSetupAllowedFlags = FlagResumeEnable | FlagLease

// NewBrokerSetupFrame validates F1 (0 < requestN <= MaxRequestN) and builds
// a connection-scoped (streamId 0) BROKER_SETUP frame.
func NewBrokerSetupFrame(requestN int32, flags FrameFlags) (*BrokerSetupFrame, error) {
	if requestN <= 0 || requestN > MaxRequestN {
		return nil, eris.Wrapf(ErrInvalidArgument, "broker setup requestN %d out of range (0, %d]", requestN, MaxRequestN)
	}
	return &BrokerSetupFrame{
		Header: FrameHeader{
			Type:     FrameTypeBrokerSetup,
			Flags:    maskFlags(flags, brokerSetupAllowedFlags),
			StreamID: 0,
		},
		RequestN: requestN,
	}, nil
}

const destinationSetupAllowedFlags = FlagFollows

// DestinationSetupFrame registers an application destination with the
// broker.
type DestinationSetupFrame struct {
	Header  FrameHeader
	Payload Payload
}

// NewDestinationSetupFrame builds a DESTINATION_SETUP frame for the given
// stream. The METADATA bit is derived from payload.HasMetadata(), not taken
// from flags, so the stored header always satisfies P1.
func NewDestinationSetupFrame(streamID StreamID, flags FrameFlags, payload Payload) (*DestinationSetupFrame, error) {
	if err := checkStreamScope(FrameTypeDestinationSetup, streamID); err != nil {
		return nil, err
	}
	masked := maskFlags(flags, destinationSetupAllowedFlags)
	masked = withMetadataBit(masked, payload.HasMetadata())
	return &DestinationSetupFrame{
		Header: FrameHeader{
			Type:     FrameTypeDestinationSetup,
			Flags:    masked,
			StreamID: streamID,
		},
		Payload: payload,
	}, nil
}

const destinationAllowedFlags = FlagFollows | FlagKeepaliveRespond

// DestinationFrame carries application payload to a registered destination.
type DestinationFrame struct {
	Header  FrameHeader
	Payload Payload
}

// NewDestinationFrame builds a DESTINATION frame for the given stream, with
// the same METADATA-derivation rule as NewDestinationSetupFrame.
func NewDestinationFrame(streamID StreamID, flags FrameFlags, payload Payload) (*DestinationFrame, error) {
	if err := checkStreamScope(FrameTypeDestination, streamID); err != nil {
		return nil, err
	}
	masked := maskFlags(flags, destinationAllowedFlags)
	masked = withMetadataBit(masked, payload.HasMetadata())
	return &DestinationFrame{
		Header: FrameHeader{
			Type:     FrameTypeDestination,
			Flags:    masked,
			StreamID: streamID,
		},
		Payload: payload,
	}, nil
}

// withMetadataBit returns flags with FlagMetadata forced to match present.
func withMetadataBit(flags FrameFlags, present bool) FrameFlags {
	if present {
		return flags | FlagMetadata
	}
	return flags &^ FlagMetadata
}

// GroupFrame addresses every destination registered under a group name,
// carried entirely in the metadata chain (there is no separate data body).
type GroupFrame struct {
	Header   FrameHeader
	Metadata ByteChain
}

// NewGroupFrame validates F2 (non-empty metadata) and builds a
// connection-scoped GROUP frame. The METADATA flag is always set.
func NewGroupFrame(metadata ByteChain) (*GroupFrame, error) {
	if metadata.Len() == 0 {
		return nil, eris.Wrap(ErrInvalidArgument, "group frame requires non-empty metadata")
	}
	return &GroupFrame{
		Header: FrameHeader{
			Type:     FrameTypeGroup,
			Flags:    FlagMetadata,
			StreamID: 0,
		},
		Metadata: metadata,
	}, nil
}

// BroadcastFrame addresses every destination on the broker. It carries no
// fields of its own and no flags beyond the header's defaults.
type BroadcastFrame struct {
	Header FrameHeader
}

// NewBroadcastFrame builds a BROADCAST frame for the given stream.
func NewBroadcastFrame(streamID StreamID) (*BroadcastFrame, error) {
	if err := checkStreamScope(FrameTypeBroadcast, streamID); err != nil {
		return nil, err
	}
	return &BroadcastFrame{Header: FrameHeader{Type: FrameTypeBroadcast, Flags: FlagEmpty, StreamID: streamID}}, nil
}

// ShardFrame addresses a single shard-selected destination.
type ShardFrame struct {
	Header FrameHeader
}

// NewShardFrame builds a SHARD frame for the given stream.
func NewShardFrame(streamID StreamID) (*ShardFrame, error) {
	if err := checkStreamScope(FrameTypeShard, streamID); err != nil {
		return nil, err
	}
	return &ShardFrame{Header: FrameHeader{Type: FrameTypeShard, Flags: FlagEmpty, StreamID: streamID}}, nil
}
