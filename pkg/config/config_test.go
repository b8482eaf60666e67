package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadFullProfile(t *testing.T) {
	t.Setenv("SPEECH_KEY", "secret-key")
	path := writeProfile(t, `
log_level = "debug"

[auth]
endpoint = "wss://example.com/tts/v1"
key = "${SPEECH_KEY}"
proxy = "socks5://127.0.0.1:1080"

[[auth.headers]]
name = "X-First"
value = "1"

[[auth.headers]]
name = "X-Second"
value = "2"

[text]
voice = "en-US-JennyNeural"
rate = "+10%"
style_degree = 1.2

[output]
container = "mp3"
quality = 2
`)
	profile, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if profile.Auth.Key != "secret-key" {
		t.Fatalf("env expansion failed: %q", profile.Auth.Key)
	}
	if profile.Auth.Proxy != "socks5://127.0.0.1:1080" {
		t.Fatalf("proxy not loaded: %q", profile.Auth.Proxy)
	}
	if profile.Text.Voice != "en-US-JennyNeural" || profile.Text.StyleDegree != 1.2 {
		t.Fatalf("text defaults not loaded: %+v", profile.Text)
	}
	if profile.Output.Container != "mp3" || profile.Output.Quality != 2 {
		t.Fatalf("output defaults not loaded: %+v", profile.Output)
	}
	if profile.LogLevel != "debug" {
		t.Fatalf("log level not loaded: %q", profile.LogLevel)
	}

	auth := profile.TransportAuth()
	if len(auth.Headers) != 2 || auth.Headers[0].Name != "X-First" || auth.Headers[1].Name != "X-Second" {
		t.Fatalf("header order not preserved: %+v", auth.Headers)
	}
}

func TestLoadMissingDefaultProfile(t *testing.T) {
	profile, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing profile must fall back to defaults: %v", err)
	}
	if profile.Output.Container != "wav" || profile.Output.Quality != 0 {
		t.Fatalf("unexpected defaults: %+v", profile.Output)
	}
	if profile.LogLevel != "info" || profile.LogFormat != "text" {
		t.Fatalf("unexpected logging defaults: %+v", profile)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeProfile(t, `
[output]
containr = "wav"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
}
