package protocol

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/azspeech/azspeech/pkg/errorsx"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	id := NewRequestID()
	env := Envelope{
		Path:        PathSynthesisContext,
		RequestID:   id,
		ContentType: "application/json",
		Body:        `{"synthesis":{}}`,
	}
	encoded := env.Encode()

	idx := strings.Index(encoded, "\r\n\r\n")
	if idx < 0 {
		t.Fatalf("encoded envelope has no header terminator")
	}
	headers := parseHeaders(encoded[:idx])
	if headers["path"] != PathSynthesisContext {
		t.Fatalf("path not preserved: %q", headers["path"])
	}
	if headers["x-requestid"] != id {
		t.Fatalf("request id not preserved: %q", headers["x-requestid"])
	}
	if headers["x-timestamp"] == "" {
		t.Fatalf("timestamp missing")
	}
	if headers["content-type"] != "application/json" {
		t.Fatalf("content type not preserved: %q", headers["content-type"])
	}
	if got := encoded[idx+4:]; got != env.Body {
		t.Fatalf("body not preserved: %q", got)
	}
}

func TestNewRequestIDShape(t *testing.T) {
	id := NewRequestID()
	if len(id) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(id))
	}
	if strings.ContainsAny(id, "-ABCDEF") {
		t.Fatalf("expected lowercase hex without separators: %q", id)
	}
}

func TestParseTextKinds(t *testing.T) {
	cases := []struct {
		path string
		want Kind
	}{
		{"turn.start", KindTurnStart},
		{"response", KindResponse},
		{"audio.metadata", KindAudioMetadata},
		{"turn.end", KindTurnEnd},
		{"something.new", KindUnrecognized},
	}
	for _, tc := range cases {
		raw := "Path: " + tc.path + "\r\nX-RequestId: abc\r\n\r\nbody"
		msg, err := ParseText([]byte(raw))
		if err != nil {
			t.Fatalf("parse %s: %v", tc.path, err)
		}
		if msg.Kind() != tc.want {
			t.Fatalf("path %s: expected kind %s, got %s", tc.path, tc.want, msg.Kind())
		}
	}
}

func TestParseTextBodyAndUnknownHeaders(t *testing.T) {
	raw := "X-Unknown: whatever\r\nPath: response\r\nX-Another: 1\r\n\r\n{\"ok\":true}"
	msg, err := ParseText([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	resp, ok := msg.(Response)
	if !ok {
		t.Fatalf("expected Response, got %T", msg)
	}
	if resp.Body != `{"ok":true}` {
		t.Fatalf("unexpected body: %q", resp.Body)
	}
}

func TestParseTextMissingTerminator(t *testing.T) {
	_, err := ParseText([]byte("Path: turn.start\r\n"))
	if !errorsx.HasKind(err, errorsx.KindInvalidMessage) {
		t.Fatalf("expected invalid_message, got %v", err)
	}
}

func TestParseTextMissingPath(t *testing.T) {
	_, err := ParseText([]byte("X-RequestId: abc\r\n\r\n"))
	if !errorsx.HasKind(err, errorsx.KindInvalidMessage) {
		t.Fatalf("expected invalid_message, got %v", err)
	}
}

func TestParseBinaryAudio(t *testing.T) {
	header := "Path: audio\r\nX-RequestId: abc\r\nContent-Type: audio/x-wav"
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	frame := make([]byte, 2)
	binary.BigEndian.PutUint16(frame, uint16(len(header)))
	frame = append(frame, header...)
	frame = append(frame, payload...)

	msg, err := ParseBinary(frame)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	audio, ok := msg.(Audio)
	if !ok {
		t.Fatalf("expected Audio, got %T", msg)
	}
	if !bytes.Equal(audio.Data, payload) {
		t.Fatalf("unexpected payload: %x", audio.Data)
	}
}

func TestParseBinaryHeaderLengthOverrun(t *testing.T) {
	frame := make([]byte, 2)
	binary.BigEndian.PutUint16(frame, 500)
	frame = append(frame, []byte("Path: audio")...)

	_, err := ParseBinary(frame)
	if !errorsx.HasKind(err, errorsx.KindInvalidMessage) {
		t.Fatalf("expected invalid_message, got %v", err)
	}
}

func TestParseBinaryTooShort(t *testing.T) {
	_, err := ParseBinary([]byte{0x01})
	if !errorsx.HasKind(err, errorsx.KindInvalidMessage) {
		t.Fatalf("expected invalid_message, got %v", err)
	}
}
