package framing

import "testing"

func TestNewBrokerSetupFrameValidatesRequestN(t *testing.T) {
	if _, err := NewBrokerSetupFrame(0, FlagEmpty); err == nil {
		t.Fatalf("expected error for requestN=0")
	}
	if _, err := NewBrokerSetupFrame(MaxRequestN+1, FlagEmpty); err == nil {
		t.Fatalf("expected error for requestN > MaxRequestN")
	}
	f, err := NewBrokerSetupFrame(3, FlagEmpty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Header.StreamID != 0 {
		t.Fatalf("BROKER_SETUP must be connection-scoped, got streamId %d", f.Header.StreamID)
	}
}

func TestNewBrokerSetupFrameMasksDisallowedFlags(t *testing.T) {
	f, err := NewBrokerSetupFrame(1, FlagResumeEnable|FlagNext)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Header.Flags.IsResumeEnable() {
		t.Fatalf("expected RESUME_ENABLE to survive masking")
	}
	if f.Header.Flags.IsNext() {
		t.Fatalf("NEXT is not in BROKER_SETUP's allowed flags and must be dropped")
	}
}

func TestNewGroupFrameRequiresMetadata(t *testing.T) {
	if _, err := NewGroupFrame(nil); err == nil {
		t.Fatalf("expected error for empty metadata")
	}
	f, err := NewGroupFrame(NewByteChain([]byte("x")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Header.Flags.IsMetadata() {
		t.Fatalf("GROUP must always set METADATA")
	}
	if f.Header.StreamID != 0 {
		t.Fatalf("GROUP must be connection-scoped, got streamId %d", f.Header.StreamID)
	}
}

func TestNewDestinationFrameDerivesMetadataFlag(t *testing.T) {
	f, err := NewDestinationFrame(1, FlagEmpty, Payload{Data: NewByteChain([]byte("d")), Metadata: NewByteChain([]byte("m"))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Header.Flags.IsMetadata() {
		t.Fatalf("expected METADATA to be derived from payload, regardless of passed-in flags")
	}
}

func TestNewDestinationFrameMasksDisallowedFlags(t *testing.T) {
	// F3: DESTINATION's AllowedFlags are FOLLOWS and KEEPALIVE_RESPOND, which
	// share bit 7 with RESUME_ENABLE. Requesting METADATA with no metadata in
	// the payload must leave a header with neither METADATA nor bit 7 set.
	f, err := NewDestinationFrame(1, FlagMetadata, Payload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Header.Flags.IsResumeEnable() {
		t.Fatalf("bit 7 was not requested and must not be set")
	}
	if f.Header.Flags.IsMetadata() {
		t.Fatalf("METADATA must reflect actual payload presence, not the requested flag")
	}
}

func TestStreamScopeEnforcedByConstructors(t *testing.T) {
	if _, err := NewDestinationFrame(0, FlagEmpty, Payload{}); err == nil {
		t.Fatalf("expected error constructing DESTINATION with stream id 0")
	}
	if _, err := NewBroadcastFrame(0); err == nil {
		t.Fatalf("expected error constructing BROADCAST with stream id 0")
	}
	if _, err := NewShardFrame(0); err == nil {
		t.Fatalf("expected error constructing SHARD with stream id 0")
	}
}

func TestFrameStringers(t *testing.T) {
	f, _ := NewBrokerSetupFrame(5, FlagEmpty)
	if s := f.String(); s == "" {
		t.Fatalf("expected non-empty String()")
	}
	g, _ := NewGroupFrame(NewByteChain([]byte("abc")))
	if s := g.String(); s == "" {
		t.Fatalf("expected non-empty String()")
	}
}
