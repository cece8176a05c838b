package framing

// Payload carries the optional data and metadata chains of a payload-bearing
// frame. Either or both may be nil.
type Payload struct {
	Data     ByteChain
	Metadata ByteChain
}

// HasMetadata reports whether the payload carries a metadata chain.
func (p Payload) HasMetadata() bool { return len(p.Metadata) > 0 }

// EncodePayload writes p to a: a 24-bit metadata length followed by the
// metadata chain when withMetadata is set, then the data chain with no
// further length prefix (it runs to the end of the frame).
func EncodePayload(a *Appender, p Payload, withMetadata bool) error {
	if withMetadata {
		if err := a.WriteUint24(uint32(p.Metadata.Len())); err != nil {
			return err
		}
		a.Insert(p.Metadata)
	}
	if len(p.Data) > 0 {
		a.Insert(p.Data)
	}
	return nil
}

// DecodePayload reads a Payload from c. When withMetadata is set, it first
// consumes a 24-bit length and clones that many bytes as Metadata; it then
// clones everything left in c as Data.
func DecodePayload(c *Cursor, withMetadata bool) (Payload, error) {
	var p Payload
	if withMetadata {
		n, err := c.ReadUint24()
		if err != nil {
			return Payload{}, err
		}
		metadata, err := c.CloneSlice(int(n))
		if err != nil {
			return Payload{}, err
		}
		p.Metadata = metadata
	}
	p.Data = c.RemainderAsChain()
	return p, nil
}
