// Command proteusctl is a hand tool for exercising the framing package:
// building a frame from flags and printing its wire bytes, decoding wire
// bytes back into a human-readable frame (by peeking type and stream id
// before committing to a full decode), and running protocol-version
// autodetection against a hex-encoded buffer.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/leaanthony/clir"

	"github.com/netifi/proteus-go/framing"
)

func main() {
	var (
		frameType string
		streamID  int
		requestN  int
		metadata  string
		data      string
		decodeHex string
		autoHex   string
		skipBytes int
	)

	cli := clir.NewCli("proteusctl", "Build, decode, and autodetect Proteus broker frames", "v0.1.0")

	encodeCmd := cli.NewSubCommand("encode", "Build a frame from flags and print its hex-encoded wire bytes")
	encodeCmd.StringFlag("type", "Frame type: broker-setup, destination-setup, destination, group, broadcast, shard", &frameType)
	encodeCmd.IntFlag("stream", "Stream id (0 for connection-scoped frames)", &streamID)
	encodeCmd.IntFlag("requestn", "Request count, for broker-setup frames", &requestN)
	encodeCmd.StringFlag("metadata", "Metadata string", &metadata)
	encodeCmd.StringFlag("data", "Data string", &data)
	encodeCmd.Action(func() error {
		return runEncode(frameType, streamID, requestN, metadata, data)
	})

	decodeCmd := cli.NewSubCommand("decode", "Peek type and stream id, then fully decode a hex-encoded frame")
	decodeCmd.StringFlag("hex", "Hex-encoded frame bytes (reads stdin if omitted)", &decodeHex)
	decodeCmd.Action(func() error {
		raw, err := hexArgOrStdin(decodeHex)
		if err != nil {
			return err
		}
		return runDecode(raw)
	})

	autodetectCmd := cli.NewSubCommand("autodetect", "Detect the protocol version declared by the first frame of a connection")
	autodetectCmd.StringFlag("hex", "Hex-encoded first-frame bytes (reads stdin if omitted)", &autoHex)
	autodetectCmd.IntFlag("skip", "Bytes to skip before the frame (e.g. a length prefix)", &skipBytes)
	autodetectCmd.Action(func() error {
		raw, err := hexArgOrStdin(autoHex)
		if err != nil {
			return err
		}
		return runAutodetect(raw, skipBytes)
	})

	if err := cli.Run(); err != nil {
		log.Fatal(err)
	}
}

// hexArgOrStdin decodes arg as hex if non-empty, otherwise reads and decodes
// a hex string from stdin.
func hexArgOrStdin(arg string) ([]byte, error) {
	if arg != "" {
		return hex.DecodeString(arg)
	}
	input, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(strings.TrimSpace(string(input)))
}

func runEncode(frameType string, streamID, requestN int, metadata, data string) error {
	s := framing.NewFrameSerializerV1_0()
	var (
		buf framing.ByteChain
		err error
	)
	switch frameType {
	case "broker-setup":
		f, cerr := framing.NewBrokerSetupFrame(int32(requestN), framing.FlagEmpty)
		if cerr != nil {
			return cerr
		}
		buf, err = s.SerializeBrokerSetup(f)
	case "destination-setup":
		payload := payloadFromStrings(metadata, data)
		f, cerr := framing.NewDestinationSetupFrame(framing.StreamID(streamID), framing.FlagEmpty, payload)
		if cerr != nil {
			return cerr
		}
		buf, err = s.SerializeDestinationSetup(f)
	case "destination":
		payload := payloadFromStrings(metadata, data)
		f, cerr := framing.NewDestinationFrame(framing.StreamID(streamID), framing.FlagEmpty, payload)
		if cerr != nil {
			return cerr
		}
		buf, err = s.SerializeDestination(f)
	case "group":
		f, cerr := framing.NewGroupFrame(framing.NewByteChain([]byte(metadata)))
		if cerr != nil {
			return cerr
		}
		buf, err = s.SerializeGroup(f)
	case "broadcast":
		f, cerr := framing.NewBroadcastFrame(framing.StreamID(streamID))
		if cerr != nil {
			return cerr
		}
		buf, err = s.SerializeBroadcast(f)
	case "shard":
		f, cerr := framing.NewShardFrame(framing.StreamID(streamID))
		if cerr != nil {
			return cerr
		}
		buf, err = s.SerializeShard(f)
	default:
		return fmt.Errorf("unknown frame type %q", frameType)
	}
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(buf.Bytes()))
	return nil
}

func payloadFromStrings(metadata, data string) framing.Payload {
	p := framing.Payload{}
	if metadata != "" {
		p.Metadata = framing.NewByteChain([]byte(metadata))
	}
	if data != "" {
		p.Data = framing.NewByteChain([]byte(data))
	}
	return p
}

// runDecode peeks the frame type and stream id off buf without consuming it,
// prints what it found, then dispatches the full decode off the peeked type
// rather than a hand-supplied one.
func runDecode(raw []byte) error {
	buf := framing.NewByteChain(raw)
	s := framing.NewFrameSerializerV1_0()

	typ := s.PeekFrameType(buf)
	streamID, ok := s.PeekStreamID(buf)
	if !ok {
		return fmt.Errorf("could not peek stream id: truncated or negative")
	}
	fmt.Printf("peek: type=%s streamId=%d\n", typ, streamID)

	switch typ {
	case framing.FrameTypeBrokerSetup:
		f, err := s.DeserializeBrokerSetup(buf)
		if err != nil {
			return err
		}
		fmt.Println(f.String())
	case framing.FrameTypeDestinationSetup:
		f, err := s.DeserializeDestinationSetup(buf)
		if err != nil {
			return err
		}
		fmt.Println(f.String())
	case framing.FrameTypeDestination:
		f, err := s.DeserializeDestination(buf)
		if err != nil {
			return err
		}
		fmt.Println(f.String())
	case framing.FrameTypeGroup:
		f, err := s.DeserializeGroup(buf)
		if err != nil {
			return err
		}
		fmt.Println(f.String())
	case framing.FrameTypeBroadcast:
		f, err := s.DeserializeBroadcast(buf)
		if err != nil {
			return err
		}
		fmt.Println(f.String())
	case framing.FrameTypeShard:
		f, err := s.DeserializeShard(buf)
		if err != nil {
			return err
		}
		fmt.Println(f.String())
	default:
		return fmt.Errorf("peeked frame type %s has no decoder", typ)
	}
	return nil
}

func runAutodetect(raw []byte, skipBytes int) error {
	s := framing.NewFrameSerializerV1_0()
	version := s.DetectProtocolVersion(framing.NewByteChain(raw), skipBytes)
	fmt.Println(version.String())
	return nil
}
