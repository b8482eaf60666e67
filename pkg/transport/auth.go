package transport

// DefaultEndpoint is the trial endpoint used when the caller does not
// supply one.
const DefaultEndpoint = "wss://eastus.api.speech.microsoft.com/cognitiveservices/websocket/v1"

// TrialOrigin is sent as the Origin header when connecting to the trial
// endpoint without custom headers.
const TrialOrigin = "https://azure.microsoft.com"

// Header is one custom request header. Order is preserved as supplied.
type Header struct {
	Name  string
	Value string
}

// Auth carries the endpoint and credential settings for one connection.
// It is caller-supplied and immutable for the connection's lifetime.
type Auth struct {
	// Endpoint is the websocket URL of the synthesis service.
	Endpoint string
	// Token, when set, is passed as the Authorization query parameter.
	Token string
	// Key, when set, is sent as the subscription-key header.
	Key string
	// Headers are custom request headers. When non-empty they replace the
	// default trial Origin header.
	Headers []Header
}
