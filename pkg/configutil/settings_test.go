package configutil

import "testing"

type outputSettings struct {
	Container string `mapstructure:"container"`
	Quality   int    `mapstructure:"quality"`
}

func TestDecodeSettingsWeakTyping(t *testing.T) {
	var out outputSettings
	err := DecodeSettings(map[string]any{
		"Container": "mp3",
		"quality":   "2",
	}, &out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Container != "mp3" || out.Quality != 2 {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestValidateSettingsUnknownKey(t *testing.T) {
	err := ValidateSettings(map[string]any{"containr": "wav"}, Schema{Optional: []string{"container"}})
	if err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestValidateSettingsMissingRequired(t *testing.T) {
	err := ValidateSettings(map[string]any{"voice": " "}, Schema{Required: []string{"voice"}})
	if err == nil {
		t.Fatalf("expected missing required error")
	}
}

func TestValidateSettingsKeyNormalization(t *testing.T) {
	err := ValidateSettings(map[string]any{"Style-Degree": 1.0}, Schema{Optional: []string{"style_degree"}})
	if err != nil {
		t.Fatalf("normalized key must be accepted: %v", err)
	}
}
