// Package framing implements the wire format of the Proteus broker
// protocol: bit-exact serialization, deserialization, and structural
// validation of frames on a shared byte stream, plus protocol-version
// autodetection on the first frame of a connection.
//
// The package is synchronous, single-threaded and non-blocking: every
// operation is a pure computation over in-memory buffers. It never performs
// I/O and never blocks. Frame routing, connection lifecycle, compression,
// and encryption all live above this layer and are out of scope here.
package framing

import "github.com/rotisserie/eris"

// ByteChain is a reference to a frame body: a sequence of byte segments
// that may alias slices of a larger buffer the transport handed in. Unlike
// the C++ original this is grounded on (folly::IOBuf, a refcounted linked
// list of owned segments), Go slices already alias their backing array when
// re-sliced, so a ByteChain needs no manual refcounting: the garbage
// collector keeps a segment's backing array alive for exactly as long as
// something still references it. Cloning a ByteChain (copying the slice
// header) is the cheap, allocation-free operation §3.5 requires; it never
// copies the underlying bytes.
//
// A nil or empty ByteChain represents an absent payload (Option<ByteChain>
// in the spec's terms).
type ByteChain [][]byte

// NewByteChain wraps a single buffer as a one-segment chain. It returns nil
// for an empty input, so absence and zero-length are the same representation
// throughout this package.
func NewByteChain(b []byte) ByteChain {
	if len(b) == 0 {
		return nil
	}
	return ByteChain{b}
}

// Len returns the total length of the chain in O(segments), per §3.5's
// computeChainDataLength contract.
func (c ByteChain) Len() int {
	n := 0
	for _, seg := range c {
		n += len(seg)
	}
	return n
}

// Bytes flattens the chain into a single contiguous slice. It copies only
// when the chain has more than one segment; a one-segment chain is returned
// as-is.
func (c ByteChain) Bytes() []byte {
	switch len(c) {
	case 0:
		return nil
	case 1:
		return c[0]
	default:
		out := make([]byte, 0, c.Len())
		for _, seg := range c {
			out = append(out, seg...)
		}
		return out
	}
}

// Equal reports whether two chains hold the same bytes, regardless of how
// those bytes are split across segments.
func (c ByteChain) Equal(other ByteChain) bool {
	if c.Len() != other.Len() {
		return false
	}
	a, b := c.Bytes(), other.Bytes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ErrTruncated is returned by any Cursor read that runs past the end of its
// chain.
var ErrTruncated = eris.New("framing: truncated frame")

// Cursor reads big-endian integers and byte ranges out of a ByteChain
// without copying. It is a value type on purpose: peek operations clone it
// by assignment so they can read ahead without disturbing the caller's
// cursor (§4.5 "peek operations must be non-destructive").
type Cursor struct {
	chain ByteChain
	seg   int // index of the current segment
	off   int // offset within that segment
}

// NewCursor creates a cursor positioned at the start of chain.
func NewCursor(chain ByteChain) Cursor {
	return Cursor{chain: chain}
}

// TotalRemaining returns the number of unread bytes.
func (c Cursor) TotalRemaining() int {
	if c.seg >= len(c.chain) {
		return 0
	}
	n := len(c.chain[c.seg]) - c.off
	for i := c.seg + 1; i < len(c.chain); i++ {
		n += len(c.chain[i])
	}
	return n
}

// advance moves the cursor forward n bytes across segment boundaries
// without reading or copying anything; Skip uses it.
func (c *Cursor) advance(n int) {
	for n > 0 && c.seg < len(c.chain) {
		avail := len(c.chain[c.seg]) - c.off
		if n < avail {
			c.off += n
			return
		}
		n -= avail
		c.seg++
		c.off = 0
	}
}

// readN copies the next n bytes into dst, advancing the cursor. It fails if
// fewer than n bytes remain.
func (c *Cursor) readN(dst []byte) error {
	n := len(dst)
	if c.TotalRemaining() < n {
		return ErrTruncated
	}
	pos := 0
	seg, off := c.seg, c.off
	for pos < n {
		avail := len(c.chain[seg]) - off
		take := n - pos
		if take > avail {
			take = avail
		}
		copy(dst[pos:pos+take], c.chain[seg][off:off+take])
		pos += take
		off += take
		if off == len(c.chain[seg]) {
			seg++
			off = 0
		}
	}
	c.seg, c.off = seg, off
	return nil
}

// ReadUint8 reads a single byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	var b [1]byte
	if err := c.readN(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a big-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	var b [2]byte
	if err := c.readN(b[:]); err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// ReadUint32 reads a big-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	var b [4]byte
	if err := c.readN(b[:]); err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// ReadInt32 reads a big-endian, two's-complement int32.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadUint24 reads a 24-bit big-endian length field, as used for the
// metadata length prefix (§4.1).
func (c *Cursor) ReadUint24() (uint32, error) {
	var b [3]byte
	if err := c.readN(b[:]); err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// Skip advances the cursor n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if c.TotalRemaining() < n {
		return ErrTruncated
	}
	c.advance(n)
	return nil
}

// CloneSlice returns a zero-copy sub-chain of the next n bytes and advances
// the cursor past them. The returned chain aliases the same backing arrays
// as the source; no bytes are copied.
func (c *Cursor) CloneSlice(n int) (ByteChain, error) {
	if n == 0 {
		return nil, nil
	}
	if c.TotalRemaining() < n {
		return nil, ErrTruncated
	}
	var out ByteChain
	seg, off := c.seg, c.off
	remaining := n
	for remaining > 0 {
		avail := len(c.chain[seg]) - off
		take := remaining
		if take > avail {
			take = avail
		}
		out = append(out, c.chain[seg][off:off+take])
		remaining -= take
		off += take
		if off == len(c.chain[seg]) {
			seg++
			off = 0
		}
	}
	c.seg, c.off = seg, off
	return out, nil
}

// RemainderAsChain returns everything left unread as a zero-copy chain and
// advances the cursor to the end. It returns nil if nothing remains.
func (c *Cursor) RemainderAsChain() ByteChain {
	remaining := c.TotalRemaining()
	if remaining == 0 {
		return nil
	}
	chain, _ := c.CloneSlice(remaining)
	return chain
}

// Appender assembles an outgoing frame into a ByteChain. It never grows
// beyond the capacity it was given: callers size it precisely, matching the
// "do not grow" QueueAppender discipline of the original (§4.1). Writing
// past the sized capacity is a caller bug, not a recoverable runtime
// condition, so it panics rather than returning an error.
type Appender struct {
	segments ByteChain
	cur      []byte
	pos      int
}

// NewAppender creates an appender with capacity bytes of room for direct
// writes, reserving headroom bytes of zeroed space at the very front of the
// output for a transport-owned length prefix (§4.5.2). Pass headroom=0 when
// preallocation is disabled.
func NewAppender(capacity, headroom int) *Appender {
	a := &Appender{cur: make([]byte, capacity)}
	if headroom > 0 {
		a.segments = append(a.segments, make([]byte, headroom))
	}
	return a
}

func (a *Appender) writeN(b []byte) {
	if a.pos+len(b) > len(a.cur) {
		panic("framing: appender capacity exceeded; caller misssized the buffer queue")
	}
	copy(a.cur[a.pos:], b)
	a.pos += len(b)
}

// WriteUint8 writes a single byte.
func (a *Appender) WriteUint8(v uint8) { a.writeN([]byte{v}) }

// WriteUint16 writes a big-endian uint16.
func (a *Appender) WriteUint16(v uint16) { a.writeN([]byte{byte(v >> 8), byte(v)}) }

// WriteUint32 writes a big-endian uint32.
func (a *Appender) WriteUint32(v uint32) {
	a.writeN([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// WriteInt32 writes a big-endian, two's-complement int32.
func (a *Appender) WriteInt32(v int32) { a.WriteUint32(uint32(v)) }

// MaxUint24 is the largest value a 24-bit length field can represent.
const MaxUint24 = 0xFFFFFF

// WriteUint24 writes a 24-bit big-endian length field as three separate
// byte writes, most-significant byte first (§4.1). It returns
// ErrMetadataOverflow if v exceeds MaxUint24.
func (a *Appender) WriteUint24(v uint32) error {
	if v > MaxUint24 {
		return ErrMetadataOverflow
	}
	a.writeN([]byte{byte(v >> 16), byte(v >> 8), byte(v)})
	return nil
}

// Insert appends chain to the output by reference: its segments are moved
// into the appender's segment list without copying any bytes.
func (a *Appender) Insert(chain ByteChain) {
	if a.pos > 0 {
		a.segments = append(a.segments, a.cur[:a.pos])
		a.cur, a.pos = a.cur[a.pos:], 0
	}
	a.segments = append(a.segments, chain...)
}

// Finish flushes any pending direct writes and returns the assembled chain.
// The appender must not be used after calling Finish.
func (a *Appender) Finish() ByteChain {
	if a.pos > 0 {
		a.segments = append(a.segments, a.cur[:a.pos])
		a.cur, a.pos = nil, 0
	}
	return a.segments
}

// ErrMetadataOverflow is returned when a metadata chain is too large for the
// 24-bit length field to represent (§7, encode-time, fatal).
var ErrMetadataOverflow = eris.New("framing: metadata length exceeds 24-bit field")
