package transport

import (
	"errors"
	"io"
	"net"
	"strings"

	"github.com/azspeech/azspeech/pkg/protocol"
	"github.com/gorilla/websocket"
)

// Frame is one discrete unit read from the stream, before decoding.
type Frame struct {
	Binary bool
	Data   []byte
}

// Stream is the duplex byte-stream handed to the session engine. The same
// interface is produced whether the connection went direct, through a
// SOCKS5 tunnel or through an HTTP CONNECT tunnel.
type Stream interface {
	ReadFrame() (Frame, error)
	WriteText(payload string) error
	Close() error
}

type wsStream struct {
	conn *websocket.Conn
}

func (s *wsStream) ReadFrame() (Frame, error) {
	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			return Frame{}, err
		}
		switch messageType {
		case websocket.TextMessage:
			return Frame{Data: data}, nil
		case websocket.BinaryMessage:
			return Frame{Binary: true, Data: data}, nil
		default:
			// Control frames are handled by the websocket layer.
			continue
		}
	}
}

func (s *wsStream) WriteText(payload string) error {
	return s.conn.WriteMessage(websocket.TextMessage, []byte(payload))
}

func (s *wsStream) Close() error {
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}

var _ Stream = (*wsStream)(nil)

// CloseDetails returns the close code and reason when err is a close
// handshake received from the server, else nil.
func CloseDetails(err error) *protocol.CloseFrame {
	var ce *websocket.CloseError
	if errors.As(err, &ce) && ce.Code != websocket.CloseAbnormalClosure {
		return &protocol.CloseFrame{Code: ce.Code, Reason: ce.Text}
	}
	return nil
}

// IsAbruptClose reports whether err is a reset without a closing handshake.
// This usually indicates a poor connection or service-side throttling.
func IsAbruptClose(err error) bool {
	if err == nil {
		return false
	}
	var ce *websocket.CloseError
	if errors.As(err, &ce) && ce.Code == websocket.CloseAbnormalClosure {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return strings.Contains(err.Error(), "connection reset by peer")
}
