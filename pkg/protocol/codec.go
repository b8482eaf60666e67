// Package protocol implements the header-framed message codec spoken over
// the synthesis websocket.
//
// Every outbound control or data message is one text frame: a block of
// "Key: value" header lines terminated by a blank line, followed by an
// optional body. Inbound text frames use the same grammar; inbound binary
// frames prefix the header block with a 2-byte big-endian length and carry
// the raw audio payload after it.
package protocol

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/azspeech/azspeech/pkg/errorsx"
	"github.com/google/uuid"
)

// Well-known paths for outbound messages.
const (
	PathSpeechConfig     = "speech.config"
	PathSynthesisContext = "synthesis.context"
	PathSSML             = "ssml"
)

const headerTerminator = "\r\n\r\n"

// Envelope is one outbound control or data message before encoding.
type Envelope struct {
	Path        string
	RequestID   string
	ContentType string
	Body        string
}

// Encode renders the envelope as a single text frame. The X-Timestamp
// header is stamped at encoding time.
func (e Envelope) Encode() string {
	var b strings.Builder
	b.Grow(len(e.Body) + 128)
	b.WriteString("Path: ")
	b.WriteString(e.Path)
	b.WriteString("\r\nX-RequestId: ")
	b.WriteString(e.RequestID)
	b.WriteString("\r\nX-Timestamp: ")
	b.WriteString(time.Now().UTC().Format(time.RFC3339Nano))
	if e.ContentType != "" {
		b.WriteString("\r\nContent-Type: ")
		b.WriteString(e.ContentType)
	}
	b.WriteString(headerTerminator)
	b.WriteString(e.Body)
	return b.String()
}

// NewRequestID generates a fresh request identifier: lowercase hex with no
// separators, matching what the service expects in X-RequestId.
func NewRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ParseText decodes an inbound text frame into a typed message. Unknown
// paths map to Unrecognized rather than failing.
func ParseText(data []byte) (Message, error) {
	text := string(data)
	idx := strings.Index(text, headerTerminator)
	if idx < 0 {
		return nil, errorsx.New(errorsx.KindInvalidMessage, "text frame has no header terminator")
	}
	headers := parseHeaders(text[:idx])
	body := text[idx+len(headerTerminator):]
	path, ok := headers["path"]
	if !ok {
		return nil, errorsx.New(errorsx.KindInvalidMessage, "text frame is missing the Path header")
	}
	switch path {
	case "turn.start":
		return TurnStart{}, nil
	case "response":
		return Response{Body: body}, nil
	case "audio.metadata":
		return AudioMetadata{Body: body}, nil
	case "turn.end":
		return TurnEnd{}, nil
	default:
		return Unrecognized{Path: path, Raw: data}, nil
	}
}

// ParseBinary decodes an inbound binary frame. The first two bytes are the
// big-endian length of the header block; the remainder is the payload.
func ParseBinary(data []byte) (Message, error) {
	if len(data) < 2 {
		return nil, errorsx.New(errorsx.KindInvalidMessage, "binary frame is shorter than its length prefix")
	}
	headerLen := int(binary.BigEndian.Uint16(data))
	if headerLen+2 > len(data) {
		return nil, errorsx.Newf(errorsx.KindInvalidMessage,
			"binary frame declares a %d byte header but only %d bytes follow", headerLen, len(data)-2)
	}
	headers := parseHeaders(string(data[2 : 2+headerLen]))
	payload := data[2+headerLen:]
	path, ok := headers["path"]
	if !ok {
		return nil, errorsx.New(errorsx.KindInvalidMessage, "binary frame is missing the Path header")
	}
	if path == "audio" {
		return Audio{Data: payload}, nil
	}
	return Unrecognized{Path: path, Raw: data}, nil
}

// parseHeaders splits a header block into a lowercase-keyed map. Header
// order is not significant and malformed lines are skipped.
func parseHeaders(block string) map[string]string {
	headers := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return headers
}
