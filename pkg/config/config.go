// Package config loads the user profile: endpoint and credentials, text
// defaults and output defaults, from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/azspeech/azspeech/pkg/configutil"
	"github.com/azspeech/azspeech/pkg/transport"
	"github.com/spf13/viper"
)

// HeaderConfig is one custom request header. Profile order is preserved.
type HeaderConfig struct {
	Name  string `mapstructure:"name"`
	Value string `mapstructure:"value"`
}

// AuthConfig holds connection and credential settings.
type AuthConfig struct {
	Endpoint string         `mapstructure:"endpoint"`
	Key      string         `mapstructure:"key"`
	Token    string         `mapstructure:"token"`
	Proxy    string         `mapstructure:"proxy"`
	Headers  []HeaderConfig `mapstructure:"headers"`
}

// TextConfig holds default options for text synthesis.
type TextConfig struct {
	Voice       string  `mapstructure:"voice"`
	Pitch       string  `mapstructure:"pitch"`
	Rate        string  `mapstructure:"rate"`
	Style       string  `mapstructure:"style"`
	Role        string  `mapstructure:"role"`
	StyleDegree float64 `mapstructure:"style_degree"`
}

// OutputConfig holds default output format selection.
type OutputConfig struct {
	Container string `mapstructure:"container"`
	Quality   int    `mapstructure:"quality"`
	Format    string `mapstructure:"format"`
}

// Profile is the full loaded configuration.
type Profile struct {
	Auth      AuthConfig
	Text      TextConfig
	Output    OutputConfig
	LogLevel  string
	LogFormat string
}

var textSchema = configutil.Schema{
	Optional: []string{"voice", "pitch", "rate", "style", "role", "style_degree"},
}

var outputSchema = configutil.Schema{
	Optional: []string{"container", "quality", "format"},
}

// DefaultPath returns the default profile location, or empty when the user
// config directory cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "azspeech", "profile.toml")
}

// Load reads a profile from path. A missing file is not an error when the
// path is the default one; it yields the built-in defaults.
func Load(path string) (Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("auth.endpoint", "")
	v.SetDefault("output.container", "wav")
	v.SetDefault("output.quality", 0)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var raw struct {
		Auth      AuthConfig     `mapstructure:"auth"`
		Text      map[string]any `mapstructure:"text"`
		Output    map[string]any `mapstructure:"output"`
		LogLevel  string         `mapstructure:"log_level"`
		LogFormat string         `mapstructure:"log_format"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return Profile{}, fmt.Errorf("unmarshal profile: %w", err)
	}

	if err := configutil.ValidateSettings(raw.Text, textSchema); err != nil {
		return Profile{}, fmt.Errorf("profile [text]: %w", err)
	}
	if err := configutil.ValidateSettings(raw.Output, outputSchema); err != nil {
		return Profile{}, fmt.Errorf("profile [output]: %w", err)
	}

	profile := defaults()
	profile.Auth = raw.Auth
	profile.LogLevel = raw.LogLevel
	profile.LogFormat = raw.LogFormat
	if err := configutil.DecodeSettings(raw.Text, &profile.Text); err != nil {
		return Profile{}, fmt.Errorf("profile [text]: %w", err)
	}
	if err := configutil.DecodeSettings(raw.Output, &profile.Output); err != nil {
		return Profile{}, fmt.Errorf("profile [output]: %w", err)
	}

	expandEnvStrings(&profile)
	return profile, nil
}

// TransportAuth converts the profile auth section into transport settings.
func (p Profile) TransportAuth() transport.Auth {
	auth := transport.Auth{
		Endpoint: p.Auth.Endpoint,
		Token:    p.Auth.Token,
		Key:      p.Auth.Key,
	}
	for _, h := range p.Auth.Headers {
		auth.Headers = append(auth.Headers, transport.Header{Name: h.Name, Value: h.Value})
	}
	return auth
}

func defaults() Profile {
	return Profile{
		Output:    OutputConfig{Container: "wav", Quality: 0},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func expandEnvStrings(p *Profile) {
	expand := func(s string) string {
		if strings.Contains(s, "$") {
			return os.ExpandEnv(s)
		}
		return s
	}
	p.Auth.Endpoint = expand(p.Auth.Endpoint)
	p.Auth.Key = expand(p.Auth.Key)
	p.Auth.Token = expand(p.Auth.Token)
	p.Auth.Proxy = expand(p.Auth.Proxy)
	for i := range p.Auth.Headers {
		p.Auth.Headers[i].Value = expand(p.Auth.Headers[i].Value)
	}
	p.Text.Voice = expand(p.Text.Voice)
}
