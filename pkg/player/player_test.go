package player

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/azspeech/azspeech/pkg/audio"
	"github.com/azspeech/azspeech/pkg/errorsx"
)

func TestPcmSampleRate(t *testing.T) {
	cases := map[string]int{
		"raw-8khz-16bit-mono-pcm":     8000,
		"raw-16khz-16bit-mono-pcm":    16000,
		"raw-22050hz-16bit-mono-pcm":  22050,
		"riff-24khz-16bit-mono-pcm":   24000,
		"riff-44100hz-16bit-mono-pcm": 44100,
		"riff-48khz-16bit-mono-pcm":   48000,
	}
	for name, want := range cases {
		rate, ok := pcmSampleRate(name)
		if !ok || rate != want {
			t.Fatalf("%s: expected %d, got %d (%v)", name, want, rate, ok)
		}
	}
}

func TestDecodeRawPCM(t *testing.T) {
	raw := []byte{0x01, 0x00, 0xff, 0x7f}
	samples, rate, channels, err := decode(raw, audio.FormatRaw24Khz16BitMonoPcm)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rate != 24000 || channels != 1 {
		t.Fatalf("unexpected stream shape: %d %d", rate, channels)
	}
	if len(samples) != 2 || samples[0] != 1 || samples[1] != 32767 {
		t.Fatalf("unexpected samples: %v", samples)
	}
}

func TestDecodeRejectsOpus(t *testing.T) {
	_, _, _, err := decode(nil, audio.FormatOgg24Khz16BitMonoOpus)
	if !errorsx.HasKind(err, errorsx.KindInvalidRequest) {
		t.Fatalf("expected invalid_request, got %v", err)
	}
}

func TestStripRiffHeader(t *testing.T) {
	payload := []byte{0xaa, 0xbb}
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(payload)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	buf.Write(make([]byte, 16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)

	got := stripRiffHeader(buf.Bytes())
	if !bytes.Equal(got, payload) {
		t.Fatalf("expected %x, got %x", payload, got)
	}
}

func TestStripRiffHeaderPassthrough(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	if got := stripRiffHeader(raw); !bytes.Equal(got, raw) {
		t.Fatalf("non-riff data must pass through, got %x", got)
	}
}
