// Package player plays synthesized audio through the default output
// device. Raw and riff PCM formats play directly; mp3 formats are decoded
// first. Compressed containers without a local decoder are rejected.
package player

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"strings"

	"github.com/azspeech/azspeech/pkg/audio"
	"github.com/azspeech/azspeech/pkg/errorsx"
	"github.com/gordonklaus/portaudio"
	mp3 "github.com/hajimehoshi/go-mp3"
)

const framesPerBuffer = 1024

// Play blocks until the whole buffer has been played or ctx is cancelled.
func Play(ctx context.Context, data []byte, format audio.Format) error {
	samples, sampleRate, channels, err := decode(data, format)
	if err != nil {
		return err
	}

	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	buffer := make([]int16, framesPerBuffer*channels)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), framesPerBuffer, buffer)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return err
	}
	defer stream.Stop()

	for offset := 0; offset < len(samples); offset += len(buffer) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := copy(buffer, samples[offset:])
		for i := n; i < len(buffer); i++ {
			buffer[i] = 0
		}
		if err := stream.Write(); err != nil {
			return err
		}
	}
	return nil
}

// decode turns the synthesized buffer into interleaved int16 samples.
func decode(data []byte, format audio.Format) (samples []int16, sampleRate, channels int, err error) {
	name := string(format)
	switch {
	case strings.Contains(name, "mp3"):
		return decodeMP3(data)
	case strings.HasPrefix(name, "raw-") && strings.HasSuffix(name, "-pcm"):
		rate, ok := pcmSampleRate(name)
		if !ok {
			return nil, 0, 0, errorsx.Newf(errorsx.KindInvalidRequest, "playback not supported for format %s", format)
		}
		return bytesToSamples(data), rate, 1, nil
	case strings.HasPrefix(name, "riff-") && strings.HasSuffix(name, "-pcm"):
		rate, ok := pcmSampleRate(name)
		if !ok {
			return nil, 0, 0, errorsx.Newf(errorsx.KindInvalidRequest, "playback not supported for format %s", format)
		}
		return bytesToSamples(stripRiffHeader(data)), rate, 1, nil
	default:
		return nil, 0, 0, errorsx.Newf(errorsx.KindInvalidRequest, "playback not supported for format %s", format)
	}
}

func decodeMP3(data []byte) ([]int16, int, int, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, errorsx.Wrap(err, errorsx.KindInvalidRequest)
	}
	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, 0, 0, errorsx.Wrap(err, errorsx.KindInvalidRequest)
	}
	// go-mp3 always emits 16-bit stereo.
	return bytesToSamples(pcm), decoder.SampleRate(), 2, nil
}

// pcmSampleRate extracts the sample rate from a pcm format name such as
// raw-24khz-16bit-mono-pcm or riff-22050hz-16bit-mono-pcm.
func pcmSampleRate(name string) (int, bool) {
	parts := strings.Split(name, "-")
	if len(parts) < 2 {
		return 0, false
	}
	switch parts[1] {
	case "8khz":
		return 8000, true
	case "16khz":
		return 16000, true
	case "22050hz":
		return 22050, true
	case "24khz":
		return 24000, true
	case "44100hz":
		return 44100, true
	case "48khz":
		return 48000, true
	default:
		return 0, false
	}
}

// stripRiffHeader skips everything up to and including the data chunk
// header of a WAV buffer.
func stripRiffHeader(data []byte) []byte {
	if len(data) < 12 || !bytes.HasPrefix(data, []byte("RIFF")) {
		return data
	}
	offset := 12
	for offset+8 <= len(data) {
		chunkID := data[offset : offset+4]
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		if bytes.Equal(chunkID, []byte("data")) {
			return data[offset+8:]
		}
		offset += 8 + chunkSize
	}
	return data
}

func bytesToSamples(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
	}
	return samples
}
