package errorsx

// Kind is a short machine-readable failure classification.
type Kind string

const (
	KindUnknown Kind = "unknown"

	// KindConnect covers every failure while establishing the connection:
	// DNS, TCP, TLS, proxy negotiation and the websocket upgrade itself.
	KindConnect Kind = "connect"

	// KindWebsocket covers generic transport or frame-level faults on an
	// established connection.
	KindWebsocket Kind = "websocket"

	// KindInvalidRequest marks requests rejected before sending, such as
	// malformed header values or URLs.
	KindInvalidRequest Kind = "invalid_request"

	// KindInvalidMessage marks received frames that failed the message
	// grammar.
	KindInvalidMessage Kind = "invalid_message"

	// KindConnectionClosed marks a server-initiated termination. Errors of
	// this kind carry a close code and reason.
	KindConnectionClosed Kind = "connection_closed"

	// KindSsml marks failures from SSML interpolation.
	KindSsml Kind = "ssml"
)
