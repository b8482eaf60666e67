// Package synth drives synthesis turns over an established connection: it
// emits the context and payload messages for one request and consumes
// inbound messages until the turn completes or fails.
package synth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/azspeech/azspeech/pkg/audio"
	"github.com/azspeech/azspeech/pkg/errorsx"
	"github.com/azspeech/azspeech/pkg/protocol"
	"github.com/azspeech/azspeech/pkg/ssml"
	"github.com/azspeech/azspeech/pkg/transport"
)

// clientInfoPayload is the fixed client context sent in speech.config. It
// is part of the wire contract and not caller-configurable.
const clientInfoPayload = `{"context":{"system":{"version":"1.25.0","name":"SpeechSDK","build":"Windows-x64"},"os":{"platform":"Windows","name":"Client","version":"10"}}}`

// defaultCloseReason is reported when the server closes the connection
// without supplying a reason.
const defaultCloseReason = "the server closed the connection without a reason"

// Config holds everything needed to establish a synthesizer connection.
type Config struct {
	Auth     transport.Auth
	ProxyURL string
	Format   audio.Format
	Logger   *slog.Logger
}

// Result is the outcome of one completed synthesis turn.
type Result struct {
	// Audio is the synthesized audio, assembled in arrival order.
	Audio []byte
	// Metadata holds the audio.metadata bodies, in arrival order.
	Metadata []string
}

// messageSource yields inbound protocol messages in transport order.
type messageSource interface {
	next() (protocol.Message, error)
}

// Synthesizer owns one established connection and processes at most one
// synthesize call at a time.
type Synthesizer struct {
	format audio.Format
	stream transport.Stream
	source messageSource
	logger *slog.Logger
	mu     sync.Mutex
}

// Connect establishes the connection for the given config and sends the
// speech.config handshake message.
func Connect(ctx context.Context, cfg Config) (*Synthesizer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	format := cfg.Format
	if format == "" {
		format = audio.DefaultFormat
	}

	stream, err := transport.Dialer{
		Auth:     cfg.Auth,
		ProxyURL: cfg.ProxyURL,
		Logger:   logger,
	}.Dial(ctx)
	if err != nil {
		return nil, err
	}

	speechConfig := protocol.Envelope{
		Path:        protocol.PathSpeechConfig,
		RequestID:   protocol.NewRequestID(),
		ContentType: "application/json",
		Body:        clientInfoPayload,
	}
	if err := stream.WriteText(speechConfig.Encode()); err != nil {
		_ = stream.Close()
		return nil, errorsx.Wrap(err, errorsx.KindWebsocket)
	}

	logger.Info("synthesizer connected", slog.String("format", string(format)))
	return &Synthesizer{
		format: format,
		stream: stream,
		source: &streamSource{stream: stream},
		logger: logger,
	}, nil
}

// Close tears down the underlying connection.
func (s *Synthesizer) Close() error {
	if s.stream == nil {
		return nil
	}
	return s.stream.Close()
}

// SynthesizeText interpolates the SSML for the text and synthesizes it.
func (s *Synthesizer) SynthesizeText(ctx context.Context, text string, opts ssml.Options) (Result, error) {
	document, err := ssml.Interpolate(text, opts)
	if err != nil {
		return Result{}, err
	}
	return s.SynthesizeSSML(ctx, document)
}

// SynthesizeSSML runs one synthesis turn for the given SSML document and
// returns the accumulated audio and metadata. On any failure the partial
// buffer is discarded.
func (s *Synthesizer) SynthesizeSSML(ctx context.Context, document string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := newStateMachine()
	requestID := protocol.NewRequestID()

	if err := s.sendTurn(requestID, document); err != nil {
		_ = session.Transition(StateFailed)
		return Result{}, err
	}
	if err := session.Transition(StateAwaitingTurnStart); err != nil {
		return Result{}, errorsx.Wrap(err, errorsx.KindWebsocket)
	}

	var buffer []byte
	var metadata []string
	for {
		if err := ctx.Err(); err != nil {
			_ = session.Transition(StateFailed)
			return Result{}, errorsx.Wrap(err, errorsx.KindWebsocket)
		}
		msg, err := s.source.next()
		if err != nil {
			_ = session.Transition(StateFailed)
			return Result{}, err
		}
		switch m := msg.(type) {
		case protocol.TurnStart:
			if err := session.Transition(StateStreaming); err != nil {
				_ = session.Transition(StateFailed)
				return Result{}, errorsx.Wrap(err, errorsx.KindInvalidMessage)
			}
		case protocol.Response:
			// Acknowledgement only.
		case protocol.Audio:
			if session.State() != StateStreaming {
				s.logger.Warn("audio chunk outside streaming state",
					slog.String("state", session.State().String()))
				continue
			}
			buffer = append(buffer, m.Data...)
		case protocol.AudioMetadata:
			if session.State() != StateStreaming {
				s.logger.Warn("metadata outside streaming state",
					slog.String("state", session.State().String()))
				continue
			}
			metadata = append(metadata, m.Body)
		case protocol.TurnEnd:
			if err := session.Transition(StateCompleted); err != nil {
				_ = session.Transition(StateFailed)
				return Result{}, errorsx.Wrap(err, errorsx.KindInvalidMessage)
			}
			s.logger.Debug("turn completed",
				slog.String("request_id", requestID),
				slog.Int("audio_bytes", len(buffer)),
				slog.Int("metadata_events", len(metadata)))
			return Result{Audio: buffer, Metadata: metadata}, nil
		case protocol.Close:
			_ = session.Transition(StateClosed)
			if m.Frame == nil {
				return Result{}, errorsx.ConnectionClosed("Unknown", defaultCloseReason)
			}
			return Result{}, errorsx.ConnectionClosed(strconv.Itoa(m.Frame.Code), m.Frame.Reason)
		case protocol.Unrecognized:
			s.logger.Warn("ignoring unrecognized message", slog.String("path", m.Path))
		}
	}
}

// sendTurn emits the synthesis.context and ssml messages for one request.
func (s *Synthesizer) sendTurn(requestID, document string) error {
	synthesisContext := fmt.Sprintf(
		`{"synthesis":{"audio":{"metadataOptions":{"sentenceBoundaryEnabled":false,"wordBoundaryEnabled":true,"sessionEndEnabled":false},"outputFormat":"%s"}}}`,
		s.format)
	contextMsg := protocol.Envelope{
		Path:        protocol.PathSynthesisContext,
		RequestID:   requestID,
		ContentType: "application/json",
		Body:        synthesisContext,
	}
	if err := s.stream.WriteText(contextMsg.Encode()); err != nil {
		return errorsx.Wrap(err, errorsx.KindWebsocket)
	}
	ssmlMsg := protocol.Envelope{
		Path:        protocol.PathSSML,
		RequestID:   requestID,
		ContentType: "application/ssml+xml",
		Body:        document,
	}
	if err := s.stream.WriteText(ssmlMsg.Encode()); err != nil {
		return errorsx.Wrap(err, errorsx.KindWebsocket)
	}
	return nil
}

// streamSource adapts the transport stream into decoded protocol messages.
// Close handshakes and abrupt resets both surface as Close messages so the
// session loop handles every termination the same way.
type streamSource struct {
	stream transport.Stream
}

func (s *streamSource) next() (protocol.Message, error) {
	frame, err := s.stream.ReadFrame()
	if err != nil {
		if closeFrame := transport.CloseDetails(err); closeFrame != nil {
			return protocol.Close{Frame: closeFrame}, nil
		}
		if transport.IsAbruptClose(err) {
			return protocol.Close{}, nil
		}
		return nil, errorsx.Wrap(err, errorsx.KindWebsocket)
	}
	if frame.Binary {
		return protocol.ParseBinary(frame.Data)
	}
	return protocol.ParseText(frame.Data)
}
