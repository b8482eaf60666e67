package protocol

// Kind identifies the protocol message carried by an inbound frame.
type Kind string

const (
	KindTurnStart     Kind = "turn.start"
	KindResponse      Kind = "response"
	KindAudio         Kind = "audio"
	KindAudioMetadata Kind = "audio.metadata"
	KindTurnEnd       Kind = "turn.end"
	KindClose         Kind = "close"
	KindUnrecognized  Kind = "unrecognized"
)

// Message is one decoded inbound protocol message. The set of
// implementations is closed; consumers switch on the concrete type and
// treat Unrecognized as the forward-compatibility arm.
type Message interface {
	Kind() Kind
}

// TurnStart marks the beginning of a synthesis turn.
type TurnStart struct{}

// Response is a server acknowledgement; the body is informational only.
type Response struct {
	Body string
}

// Audio carries one chunk of the synthesized audio stream.
type Audio struct {
	Data []byte
}

// AudioMetadata carries one metadata event (for example a word boundary).
type AudioMetadata struct {
	Body string
}

// TurnEnd marks the successful end of a synthesis turn.
type TurnEnd struct{}

// CloseFrame is the code and reason of a server close, when supplied.
type CloseFrame struct {
	Code   int
	Reason string
}

// Close reports that the server terminated the connection. Frame is nil
// when the transport supplied no close code or reason.
type Close struct {
	Frame *CloseFrame
}

// Unrecognized preserves frames whose path is not part of the known set.
type Unrecognized struct {
	Path string
	Raw  []byte
}

func (TurnStart) Kind() Kind     { return KindTurnStart }
func (Response) Kind() Kind      { return KindResponse }
func (Audio) Kind() Kind         { return KindAudio }
func (AudioMetadata) Kind() Kind { return KindAudioMetadata }
func (TurnEnd) Kind() Kind       { return KindTurnEnd }
func (Close) Kind() Kind         { return KindClose }
func (Unrecognized) Kind() Kind  { return KindUnrecognized }
