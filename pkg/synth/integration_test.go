package synth

import (
	"bytes"
	"context"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/azspeech/azspeech/pkg/transport"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// startFakeService runs a service that expects speech.config first, then
// answers one synthesis turn with scripted frames.
func startFakeService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, first, err := conn.ReadMessage()
		if err != nil || !strings.HasPrefix(string(first), "Path: speech.config\r\n") {
			t.Errorf("expected speech.config first, got %q", first)
			return
		}

		// synthesis.context then ssml
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}

		_ = conn.WriteMessage(websocket.TextMessage, []byte("Path: turn.start\r\nX-RequestId: r\r\n\r\n{}"))
		_ = conn.WriteMessage(websocket.BinaryMessage, binaryAudioFrame([]byte("PCM0")))
		_ = conn.WriteMessage(websocket.TextMessage, []byte("Path: audio.metadata\r\n\r\n{\"Metadata\":[]}"))
		_ = conn.WriteMessage(websocket.BinaryMessage, binaryAudioFrame([]byte("PCM1")))
		_ = conn.WriteMessage(websocket.TextMessage, []byte("Path: turn.end\r\n\r\n{}"))

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func binaryAudioFrame(payload []byte) []byte {
	header := "Path: audio\r\nContent-Type: audio/x-wav"
	frame := make([]byte, 2)
	binary.BigEndian.PutUint16(frame, uint16(len(header)))
	frame = append(frame, header...)
	return append(frame, payload...)
}

func TestConnectAndSynthesizeEndToEnd(t *testing.T) {
	srv := startFakeService(t)
	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")

	s, err := Connect(context.Background(), Config{
		Auth: transport.Auth{Endpoint: endpoint},
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	result, err := s.SynthesizeSSML(context.Background(), "<speak>hello</speak>")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !bytes.Equal(result.Audio, []byte("PCM0PCM1")) {
		t.Fatalf("expected PCM0PCM1, got %q", result.Audio)
	}
	if len(result.Metadata) != 1 {
		t.Fatalf("expected one metadata event, got %v", result.Metadata)
	}
}
