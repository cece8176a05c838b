package framing

import "testing"

func TestByteChainLenAndBytes(t *testing.T) {
	c := ByteChain{[]byte("ab"), []byte("cde")}
	if got := c.Len(); got != 5 {
		t.Fatalf("Len() = %d, want 5", got)
	}
	if got := string(c.Bytes()); got != "abcde" {
		t.Fatalf("Bytes() = %q, want %q", got, "abcde")
	}
}

func TestByteChainEqualAcrossSegmentation(t *testing.T) {
	a := ByteChain{[]byte("ab"), []byte("cde")}
	b := ByteChain{[]byte("abc"), []byte("de")}
	if !a.Equal(b) {
		t.Fatalf("expected equal chains regardless of segmentation")
	}
}

func TestNewByteChainEmptyIsNil(t *testing.T) {
	if c := NewByteChain(nil); c != nil {
		t.Fatalf("expected nil chain for empty input, got %v", c)
	}
	if c := NewByteChain([]byte{}); c != nil {
		t.Fatalf("expected nil chain for zero-length input, got %v", c)
	}
}

func TestCursorReadPrimitives(t *testing.T) {
	c := NewCursor(ByteChain{{0x01}, {0x00, 0x02}, {0x00, 0x00, 0x00, 0x03}})
	b, err := c.ReadUint8()
	if err != nil || b != 1 {
		t.Fatalf("ReadUint8() = %d, %v", b, err)
	}
	u16, err := c.ReadUint16()
	if err != nil || u16 != 2 {
		t.Fatalf("ReadUint16() = %d, %v", u16, err)
	}
	u32, err := c.ReadUint32()
	if err != nil || u32 != 3 {
		t.Fatalf("ReadUint32() = %d, %v", u32, err)
	}
	if rem := c.TotalRemaining(); rem != 0 {
		t.Fatalf("TotalRemaining() = %d, want 0", rem)
	}
}

func TestCursorReadPastEndIsTruncated(t *testing.T) {
	c := NewCursor(ByteChain{{0x01}})
	if _, err := c.ReadUint32(); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestCursorCloneSliceIsZeroCopy(t *testing.T) {
	backing := []byte{1, 2, 3, 4, 5}
	c := NewCursor(ByteChain{backing})
	out, err := c.CloneSlice(3)
	if err != nil {
		t.Fatalf("CloneSlice() error: %v", err)
	}
	if &out[0][0] != &backing[0] {
		t.Fatalf("expected CloneSlice to alias the source backing array")
	}
	if rem := c.TotalRemaining(); rem != 2 {
		t.Fatalf("TotalRemaining() after CloneSlice = %d, want 2", rem)
	}
}

func TestCursorPeekIsNonDestructive(t *testing.T) {
	c := NewCursor(ByteChain{{1, 2, 3, 4}})
	peek := c
	if _, err := peek.ReadUint32(); err != nil {
		t.Fatalf("peek read failed: %v", err)
	}
	if rem := c.TotalRemaining(); rem != 4 {
		t.Fatalf("original cursor advanced after peek: remaining = %d, want 4", rem)
	}
}

func TestAppenderWriteAndFinish(t *testing.T) {
	a := NewAppender(7, 0)
	a.WriteUint8(0xAA)
	a.WriteUint16(0xBBCC)
	if err := a.WriteUint24(0x010203); err != nil {
		t.Fatalf("WriteUint24 error: %v", err)
	}
	a.WriteUint8(0xEE)
	chain := a.Finish()
	want := []byte{0xAA, 0xBB, 0xCC, 0x01, 0x02, 0x03, 0xEE}
	if got := chain.Bytes(); !chain.Equal(NewByteChain(want)) {
		t.Fatalf("Finish() = % x, want % x", got, want)
	}
}

func TestAppenderReservesHeadroom(t *testing.T) {
	a := NewAppender(2, 3)
	a.WriteUint16(0x1234)
	chain := a.Finish()
	if chain.Len() != 5 {
		t.Fatalf("chain length = %d, want 5 (3 headroom + 2 payload)", chain.Len())
	}
	if got := chain.Bytes()[3:]; got[0] != 0x12 || got[1] != 0x34 {
		t.Fatalf("payload after headroom = % x, want 12 34", got)
	}
}

func TestAppenderInsertIsZeroCopy(t *testing.T) {
	backing := []byte{9, 9, 9}
	a := NewAppender(1, 0)
	a.WriteUint8(0x01)
	a.Insert(ByteChain{backing})
	chain := a.Finish()
	found := false
	for _, seg := range chain {
		if len(seg) > 0 && &seg[0] == &backing[0] {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected inserted chain to alias the original backing array")
	}
}

func TestAppenderOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on capacity overflow")
		}
	}()
	a := NewAppender(1, 0)
	a.WriteUint16(0x0102)
}

func TestWriteUint24Overflow(t *testing.T) {
	a := NewAppender(3, 0)
	if err := a.WriteUint24(MaxUint24 + 1); err != ErrMetadataOverflow {
		t.Fatalf("expected ErrMetadataOverflow, got %v", err)
	}
}
