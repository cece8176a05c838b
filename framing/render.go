package framing

import "fmt"

func (t FrameType) String() string {
	switch t {
	case FrameTypeUndefined:
		return "UNDEFINED"
	case FrameTypeBrokerSetup:
		return "BROKER_SETUP"
	case FrameTypeDestinationSetup:
		return "DESTINATION_SETUP"
	case FrameTypeDestination:
		return "DESTINATION"
	case FrameTypeGroup:
		return "GROUP"
	case FrameTypeBroadcast:
		return "BROADCAST"
	case FrameTypeShard:
		return "SHARD"
	default:
		return fmt.Sprintf("FrameType(0x%02x)", uint8(t))
	}
}

func (f FrameFlags) String() string {
	if f == FlagEmpty {
		return "EMPTY"
	}
	s := ""
	add := func(bit FrameFlags, name string) {
		if f&bit != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	add(FlagIgnore, "IGNORE")
	add(FlagMetadata, "METADATA")
	add(flagBit7, "BIT7")
	add(flagBit6, "BIT6")
	add(FlagNext, "NEXT")
	return s
}

func (t StreamType) String() string {
	switch t {
	case StreamTypeStream:
		return "STREAM"
	case StreamTypeChannel:
		return "CHANNEL"
	case StreamTypeRequestResponse:
		return "REQUEST_RESPONSE"
	case StreamTypeFNF:
		return "FNF"
	default:
		return fmt.Sprintf("StreamType(%d)", uint8(t))
	}
}

func (t ErrorFrameType) String() string {
	switch t {
	case ErrorInvalidSetup:
		return "INVALID_SETUP"
	case ErrorUnsupportedSetup:
		return "UNSUPPORTED_SETUP"
	case ErrorRejectedSetup:
		return "REJECTED_SETUP"
	case ErrorRejectedResume:
		return "REJECTED_RESUME"
	case ErrorConnectionError:
		return "CONNECTION_ERROR"
	case ErrorApplicationError:
		return "APPLICATION_ERROR"
	case ErrorRejected:
		return "REJECTED"
	case ErrorCanceled:
		return "CANCELED"
	case ErrorInvalid:
		return "INVALID"
	default:
		return fmt.Sprintf("ErrorFrameType(%d)", uint8(t))
	}
}

func (h FrameHeader) String() string {
	return fmt.Sprintf("Header{type=%s, flags=%s, streamId=%d}", h.Type, h.Flags, h.StreamID)
}

func (f *BrokerSetupFrame) String() string {
	return fmt.Sprintf("BrokerSetupFrame{%s, requestN=%d}", f.Header, f.RequestN)
}

func (f *DestinationSetupFrame) String() string {
	return fmt.Sprintf("DestinationSetupFrame{%s, data=%d bytes, metadata=%d bytes}",
		f.Header, f.Payload.Data.Len(), f.Payload.Metadata.Len())
}

func (f *DestinationFrame) String() string {
	return fmt.Sprintf("DestinationFrame{%s, data=%d bytes, metadata=%d bytes}",
		f.Header, f.Payload.Data.Len(), f.Payload.Metadata.Len())
}

func (f *GroupFrame) String() string {
	return fmt.Sprintf("GroupFrame{%s, metadata=%d bytes}", f.Header, f.Metadata.Len())
}

func (f *BroadcastFrame) String() string {
	return fmt.Sprintf("BroadcastFrame{%s}", f.Header)
}

func (f *ShardFrame) String() string {
	return fmt.Sprintf("ShardFrame{%s}", f.Header)
}
