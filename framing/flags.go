package framing

// FrameFlags is the raw 10-bit flag word carried in a frame header. The
// same bit means different things depending on the frame's type, so this
// package never exposes a single named enum of flag constants: instead
// FrameFlags has one Is* accessor per meaning of a bit (below), and the
// caller picks the accessor that fits the frame's type (§9 design notes).
type FrameFlags uint16

const (
	// FlagEmpty is the zero value: no flags set.
	FlagEmpty FrameFlags = 0x000

	// FlagIgnore (bit 9) means the receiver may discard an unrecognized
	// frame rather than treating it as an error. Meaning is uniform across
	// all frame types.
	FlagIgnore FrameFlags = 0x200

	// FlagMetadata (bit 8) signals that the payload carries a metadata
	// chain. Uniform across all payload-bearing frame types.
	FlagMetadata FrameFlags = 0x100

	// The bit-7 mask (0x080) is overloaded: RESUME_ENABLE on BROKER_SETUP,
	// KEEPALIVE_RESPOND on DESTINATION, FOLLOWS on GROUP/BROADCAST/SHARD and
	// payload-carrying request frames.
	flagBit7 FrameFlags = 0x080

	// The bit-6 mask (0x040) is overloaded: LEASE on BROKER_SETUP, COMPLETE
	// on request-channel/payload frames.
	flagBit6 FrameFlags = 0x040

	// FlagNext (bit 5) marks a payload frame as delivering the next element
	// of a stream.
	FlagNext FrameFlags = 0x020
)

// Named aliases of the overloaded bits, for readability at call sites that
// know which frame kind they're building.
const (
	FlagResumeEnable     = flagBit7
	FlagKeepaliveRespond = flagBit7
	FlagFollows          = flagBit7
	FlagLease            = flagBit6
	FlagComplete         = flagBit6
)

// mask10 keeps only the 10 bits that travel on the wire.
const mask10 = 0x3FF

func (f FrameFlags) has(bit FrameFlags) bool { return f&bit != 0 }

// IsIgnore reports the IGNORE bit, meaningful for every frame type.
func (f FrameFlags) IsIgnore() bool { return f.has(FlagIgnore) }

// IsMetadata reports the METADATA bit, meaningful for every payload-bearing
// frame type.
func (f FrameFlags) IsMetadata() bool { return f.has(FlagMetadata) }

// IsResumeEnable interprets bit 7 as RESUME_ENABLE, valid on BROKER_SETUP.
func (f FrameFlags) IsResumeEnable() bool { return f.has(flagBit7) }

// IsKeepaliveRespond interprets bit 7 as KEEPALIVE_RESPOND, valid on
// DESTINATION.
func (f FrameFlags) IsKeepaliveRespond() bool { return f.has(flagBit7) }

// IsFollows interprets bit 7 as FOLLOWS, valid on GROUP/BROADCAST/SHARD and
// payload-carrying request frames.
func (f FrameFlags) IsFollows() bool { return f.has(flagBit7) }

// IsLease interprets bit 6 as LEASE, valid on BROKER_SETUP.
func (f FrameFlags) IsLease() bool { return f.has(flagBit6) }

// IsComplete interprets bit 6 as COMPLETE, valid on request-channel/payload
// frames.
func (f FrameFlags) IsComplete() bool { return f.has(flagBit6) }

// IsNext reports the NEXT bit, valid on payload frames.
func (f FrameFlags) IsNext() bool { return f.has(FlagNext) }
