package framing

import "testing"

func TestStreamTypeForMapping(t *testing.T) {
	cases := map[RequestFrameType]StreamType{
		RequestStream:   StreamTypeStream,
		RequestChannel:  StreamTypeChannel,
		RequestResponse: StreamTypeRequestResponse,
		RequestFNF:      StreamTypeFNF,
	}
	for in, want := range cases {
		if got := StreamTypeFor(in); got != want {
			t.Errorf("StreamTypeFor(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestStreamTypeForPanicsOnUnreachableInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unreachable RequestFrameType")
		}
	}()
	StreamTypeFor(RequestFrameType(99))
}
