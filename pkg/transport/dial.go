// Package transport establishes the duplex connection to the synthesis
// service: direct TLS, through a SOCKS5 tunnel or through an HTTP CONNECT
// tunnel, converging on one Stream abstraction after the websocket upgrade.
package transport

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/azspeech/azspeech/pkg/errorsx"
	"github.com/azspeech/azspeech/pkg/protocol"
	"github.com/azspeech/azspeech/pkg/redact"
	"github.com/gorilla/websocket"
	xproxy "golang.org/x/net/proxy"
)

const handshakeTimeout = 30 * time.Second

// Dialer establishes a Stream for one connection.
type Dialer struct {
	Auth Auth
	// ProxyURL selects the tunnel path by scheme: empty for direct,
	// socks5:// for a SOCKS5 tunnel, http:// or https:// for HTTP CONNECT.
	ProxyURL string
	Logger   *slog.Logger
}

// Dial resolves the request URL, selects the tunnel path and performs the
// websocket upgrade. Every connection-stage failure comes back as a
// connect-kinded error with the cause attached.
func (d Dialer) Dial(ctx context.Context) (Stream, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	target, header, err := d.buildRequest()
	if err != nil {
		return nil, err
	}

	wsDialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	switch {
	case d.ProxyURL == "":
		// direct
	default:
		proxyURL, err := url.Parse(d.ProxyURL)
		if err != nil {
			return nil, errorsx.Newf(errorsx.KindConnect, "invalid proxy url: %s", d.ProxyURL)
		}
		switch proxyURL.Scheme {
		case "socks5":
			dialContext, err := socks5DialContext(proxyURL)
			if err != nil {
				return nil, errorsx.Wrap(err, errorsx.KindConnect)
			}
			wsDialer.NetDialContext = dialContext
		case "http", "https":
			wsDialer.Proxy = http.ProxyURL(proxyURL)
		default:
			return nil, errorsx.Newf(errorsx.KindConnect, "unsupported proxy scheme: %s", proxyURL.Scheme)
		}
		logger.Debug("dialing through proxy",
			slog.String("scheme", proxyURL.Scheme),
			slog.String("proxy", redact.URL(d.ProxyURL)))
	}

	logger.Debug("dialing", slog.String("url", redact.URL(target)))
	conn, resp, err := wsDialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil {
			logger.Debug("upgrade rejected", slog.String("status", resp.Status))
		}
		return nil, errorsx.Wrap(err, errorsx.KindConnect)
	}
	logger.Debug("connection established", slog.String("endpoint", d.Auth.Endpoint))
	return &wsStream{conn: conn}, nil
}

// buildRequest assembles the upgrade URL and headers from the auth
// settings. Malformed values are rejected here, before anything is sent.
func (d Dialer) buildRequest() (string, http.Header, error) {
	endpoint := d.Auth.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", nil, errorsx.Wrap(err, errorsx.KindInvalidRequest)
	}
	query := u.Query()
	query.Set("X-ConnectionId", protocol.NewRequestID())
	if d.Auth.Token != "" {
		query.Set("Authorization", d.Auth.Token)
	}
	u.RawQuery = query.Encode()

	header := http.Header{}
	if d.Auth.Key != "" {
		header.Set("Ocp-Apim-Subscription-Key", d.Auth.Key)
	}
	if len(d.Auth.Headers) > 0 {
		for _, h := range d.Auth.Headers {
			header.Add(h.Name, h.Value)
		}
	} else if endpoint == DefaultEndpoint {
		header.Set("Origin", TrialOrigin)
	}
	return u.String(), header, nil
}

// socks5DialContext builds a context-aware dial function that completes
// the SOCKS5 negotiation (with optional user/password auth) against the
// proxy before handing the tunnel to the websocket dialer.
func socks5DialContext(proxyURL *url.URL) (func(ctx context.Context, network, addr string) (net.Conn, error), error) {
	var auth *xproxy.Auth
	if user := proxyURL.User; user != nil {
		password, _ := user.Password()
		auth = &xproxy.Auth{User: user.Username(), Password: password}
	}
	socksDialer, err := xproxy.SOCKS5("tcp", proxyURL.Host, auth, xproxy.Direct)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if cd, ok := socksDialer.(xproxy.ContextDialer); ok {
			return cd.DialContext(ctx, network, addr)
		}
		return socksDialer.Dial(network, addr)
	}, nil
}
