// Package voice lists the voices offered by the synthesis service over its
// informational HTTP API.
package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/azspeech/azspeech/pkg/errorsx"
	"github.com/azspeech/azspeech/pkg/transport"
)

// DefaultListEndpoint serves the public voice catalog.
const DefaultListEndpoint = "https://eastus.api.speech.microsoft.com/cognitiveservices/voices/list"

// Voice describes one catalog entry.
type Voice struct {
	Name            string   `json:"Name"`
	DisplayName     string   `json:"DisplayName"`
	LocalName       string   `json:"LocalName"`
	ShortName       string   `json:"ShortName"`
	Gender          string   `json:"Gender"`
	Locale          string   `json:"Locale"`
	LocaleName      string   `json:"LocaleName"`
	StyleList       []string `json:"StyleList,omitempty"`
	RolePlayList    []string `json:"RolePlayList,omitempty"`
	SampleRateHertz string   `json:"SampleRateHertz"`
	VoiceType       string   `json:"VoiceType"`
	Status          string   `json:"Status"`
	WordsPerMinute  string   `json:"WordsPerMinute,omitempty"`
}

func (v Voice) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", v.ShortName, v.DisplayName)
	fmt.Fprintf(&b, "  Locale: %s (%s)\n", v.Locale, v.LocaleName)
	fmt.Fprintf(&b, "  Gender: %s, Type: %s, Status: %s\n", v.Gender, v.VoiceType, v.Status)
	if len(v.StyleList) > 0 {
		fmt.Fprintf(&b, "  Styles: %s\n", strings.Join(v.StyleList, ", "))
	}
	if len(v.RolePlayList) > 0 {
		fmt.Fprintf(&b, "  Roles: %s\n", strings.Join(v.RolePlayList, ", "))
	}
	return b.String()
}

// Client fetches the voice catalog.
type Client struct {
	// Endpoint defaults to DefaultListEndpoint.
	Endpoint string
	// Key, when set, is sent as the subscription-key header.
	Key string
	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
}

// List fetches every voice from the catalog.
func (c Client) List(ctx context.Context) ([]Voice, error) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultListEndpoint
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.KindInvalidRequest)
	}
	if c.Key != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.Key)
	} else {
		req.Header.Set("Origin", transport.TrialOrigin)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.KindConnect)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errorsx.Newf(errorsx.KindConnect, "voice list returned %s", resp.Status)
	}

	var voices []Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, errorsx.Wrap(err, errorsx.KindInvalidMessage)
	}
	return voices, nil
}

// FilterByLocale keeps voices matching the locale, case-insensitively.
func FilterByLocale(voices []Voice, locale string) []Voice {
	var out []Voice
	for _, v := range voices {
		if strings.EqualFold(v.Locale, locale) {
			out = append(out, v)
		}
	}
	return out
}

// FilterByName keeps the voice with the given short name.
func FilterByName(voices []Voice, shortName string) []Voice {
	var out []Voice
	for _, v := range voices {
		if strings.EqualFold(v.ShortName, shortName) {
			out = append(out, v)
		}
	}
	return out
}
