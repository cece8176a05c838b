package framing

import "testing"

func TestHeaderRoundTripAllTypesAndFlags(t *testing.T) {
	for typ := 0; typ <= 0x06; typ++ {
		for flags := 0; flags <= mask10; flags++ {
			h := FrameHeader{Type: FrameType(typ), Flags: FrameFlags(flags), StreamID: 42}
			a := NewAppender(HeaderSize, 0)
			EncodeHeader(a, h)
			chain := a.Finish()
			c := NewCursor(chain)
			got, err := DecodeHeader(&c)
			if err != nil {
				t.Fatalf("type=%#x flags=%#x: decode error: %v", typ, flags, err)
			}
			if got != h {
				t.Fatalf("type=%#x flags=%#x: round trip = %+v, want %+v", typ, flags, got, h)
			}
			b := chain.Bytes()
			if b[4]>>2 != byte(typ) {
				t.Fatalf("byte0>>2 = %#x, want type %#x", b[4]>>2, typ)
			}
			gotFlags := uint16(b[4]&0x3)<<8 | uint16(b[5])
			if int(gotFlags) != flags {
				t.Fatalf("packed flags = %#x, want %#x", gotFlags, flags)
			}
		}
	}
}

func TestDecodeHeaderClampsUnknownType(t *testing.T) {
	a := NewAppender(HeaderSize, 0)
	a.WriteInt32(0)
	a.WriteUint8(0x3F << 2) // type code 0x3F, the largest 6-bit code, well above 0x06
	a.WriteUint8(0x00)
	c := NewCursor(a.Finish())
	h, err := DecodeHeader(&c)
	if err != nil {
		t.Fatalf("DecodeHeader error: %v", err)
	}
	if h.Type != FrameTypeUndefined {
		t.Fatalf("Type = %s, want UNDEFINED", h.Type)
	}
}

func TestDecodeHeaderRejectsNegativeStreamID(t *testing.T) {
	a := NewAppender(HeaderSize, 0)
	a.WriteInt32(-1)
	a.WriteUint8(0)
	a.WriteUint8(0)
	c := NewCursor(a.Finish())
	if _, err := DecodeHeader(&c); err != ErrNegativeStreamID {
		t.Fatalf("expected ErrNegativeStreamID, got %v", err)
	}
}

func TestCheckStreamScope(t *testing.T) {
	cases := []struct {
		typ     FrameType
		sid     StreamID
		wantErr bool
	}{
		{FrameTypeBrokerSetup, 0, false},
		{FrameTypeBrokerSetup, 1, true},
		{FrameTypeGroup, 0, false},
		{FrameTypeGroup, 1, true},
		{FrameTypeDestination, 0, true},
		{FrameTypeDestination, 5, false},
		{FrameTypeBroadcast, 0, true},
		{FrameTypeShard, 9, false},
	}
	for _, tc := range cases {
		err := checkStreamScope(tc.typ, tc.sid)
		if (err != nil) != tc.wantErr {
			t.Errorf("checkStreamScope(%s, %d) error = %v, wantErr %v", tc.typ, tc.sid, err, tc.wantErr)
		}
	}
}
