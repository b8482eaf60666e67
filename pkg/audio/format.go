// Package audio holds the canonical output-format identifiers understood by
// the synthesis service and the container/quality lookup used by callers
// that do not want to spell out a full format name.
package audio

import (
	"sort"

	"github.com/azspeech/azspeech/pkg/errorsx"
)

// Format is a canonical audio output format identifier, sent verbatim in
// the synthesis context.
type Format string

const (
	FormatAmrWb16000Hz                Format = "amr-wb-16000hz"
	FormatAudio16Khz128KBitRateMp3    Format = "audio-16khz-128kbitrate-mono-mp3"
	FormatAudio16Khz16Bit32KbpsOpus   Format = "audio-16khz-16bit-32kbps-mono-opus"
	FormatAudio16Khz32KBitRateMp3     Format = "audio-16khz-32kbitrate-mono-mp3"
	FormatAudio16Khz64KBitRateMp3     Format = "audio-16khz-64kbitrate-mono-mp3"
	FormatAudio24Khz160KBitRateMp3    Format = "audio-24khz-160kbitrate-mono-mp3"
	FormatAudio24Khz16Bit24KbpsOpus   Format = "audio-24khz-16bit-24kbps-mono-opus"
	FormatAudio24Khz16Bit48KbpsOpus   Format = "audio-24khz-16bit-48kbps-mono-opus"
	FormatAudio24Khz48KBitRateMp3     Format = "audio-24khz-48kbitrate-mono-mp3"
	FormatAudio24Khz96KBitRateMp3     Format = "audio-24khz-96kbitrate-mono-mp3"
	FormatAudio48Khz192KBitRateMp3    Format = "audio-48khz-192kbitrate-mono-mp3"
	FormatAudio48Khz96KBitRateMp3     Format = "audio-48khz-96kbitrate-mono-mp3"
	FormatOgg16Khz16BitMonoOpus       Format = "ogg-16khz-16bit-mono-opus"
	FormatOgg24Khz16BitMonoOpus       Format = "ogg-24khz-16bit-mono-opus"
	FormatOgg48Khz16BitMonoOpus       Format = "ogg-48khz-16bit-mono-opus"
	FormatRaw16Khz16BitMonoPcm        Format = "raw-16khz-16bit-mono-pcm"
	FormatRaw16Khz16BitMonoTrueSilk   Format = "raw-16khz-16bit-mono-truesilk"
	FormatRaw22050Hz16BitMonoPcm      Format = "raw-22050hz-16bit-mono-pcm"
	FormatRaw24Khz16BitMonoPcm        Format = "raw-24khz-16bit-mono-pcm"
	FormatRaw24Khz16BitMonoTrueSilk   Format = "raw-24khz-16bit-mono-truesilk"
	FormatRaw44100Hz16BitMonoPcm      Format = "raw-44100hz-16bit-mono-pcm"
	FormatRaw48Khz16BitMonoPcm        Format = "raw-48khz-16bit-mono-pcm"
	FormatRaw8Khz16BitMonoPcm         Format = "raw-8khz-16bit-mono-pcm"
	FormatRaw8Khz8BitMonoALaw         Format = "raw-8khz-8bit-mono-alaw"
	FormatRaw8Khz8BitMonoMULaw        Format = "raw-8khz-8bit-mono-mulaw"
	FormatRiff16Khz16BitMonoPcm       Format = "riff-16khz-16bit-mono-pcm"
	FormatRiff22050Hz16BitMonoPcm     Format = "riff-22050hz-16bit-mono-pcm"
	FormatRiff24Khz16BitMonoPcm       Format = "riff-24khz-16bit-mono-pcm"
	FormatRiff44100Hz16BitMonoPcm     Format = "riff-44100hz-16bit-mono-pcm"
	FormatRiff48Khz16BitMonoPcm       Format = "riff-48khz-16bit-mono-pcm"
	FormatRiff8Khz16BitMonoPcm        Format = "riff-8khz-16bit-mono-pcm"
	FormatRiff8Khz8BitMonoALaw        Format = "riff-8khz-8bit-mono-alaw"
	FormatRiff8Khz8BitMonoMULaw       Format = "riff-8khz-8bit-mono-mulaw"
	FormatWebm16Khz16BitMonoOpus      Format = "webm-16khz-16bit-mono-opus"
	FormatWebm24Khz16Bit24KbpsOpus    Format = "webm-24khz-16bit-24kbps-mono-opus"
	FormatWebm24Khz16BitMonoOpus      Format = "webm-24khz-16bit-mono-opus"
)

// DefaultFormat is used when neither a format nor a container/quality pair
// is requested.
const DefaultFormat = FormatRiff24Khz16BitMonoPcm

var allFormats = []Format{
	FormatAmrWb16000Hz,
	FormatAudio16Khz128KBitRateMp3,
	FormatAudio16Khz16Bit32KbpsOpus,
	FormatAudio16Khz32KBitRateMp3,
	FormatAudio16Khz64KBitRateMp3,
	FormatAudio24Khz160KBitRateMp3,
	FormatAudio24Khz16Bit24KbpsOpus,
	FormatAudio24Khz16Bit48KbpsOpus,
	FormatAudio24Khz48KBitRateMp3,
	FormatAudio24Khz96KBitRateMp3,
	FormatAudio48Khz192KBitRateMp3,
	FormatAudio48Khz96KBitRateMp3,
	FormatOgg16Khz16BitMonoOpus,
	FormatOgg24Khz16BitMonoOpus,
	FormatOgg48Khz16BitMonoOpus,
	FormatRaw16Khz16BitMonoPcm,
	FormatRaw16Khz16BitMonoTrueSilk,
	FormatRaw22050Hz16BitMonoPcm,
	FormatRaw24Khz16BitMonoPcm,
	FormatRaw24Khz16BitMonoTrueSilk,
	FormatRaw44100Hz16BitMonoPcm,
	FormatRaw48Khz16BitMonoPcm,
	FormatRaw8Khz16BitMonoPcm,
	FormatRaw8Khz8BitMonoALaw,
	FormatRaw8Khz8BitMonoMULaw,
	FormatRiff16Khz16BitMonoPcm,
	FormatRiff22050Hz16BitMonoPcm,
	FormatRiff24Khz16BitMonoPcm,
	FormatRiff44100Hz16BitMonoPcm,
	FormatRiff48Khz16BitMonoPcm,
	FormatRiff8Khz16BitMonoPcm,
	FormatRiff8Khz8BitMonoALaw,
	FormatRiff8Khz8BitMonoMULaw,
	FormatWebm16Khz16BitMonoOpus,
	FormatWebm24Khz16Bit24KbpsOpus,
	FormatWebm24Khz16BitMonoOpus,
}

// qualityMap resolves (container, quality) pairs to canonical formats.
// Quality 0 is the service default for each container.
var qualityMap = map[string]map[int]Format{
	"wav": {
		-2: FormatRiff8Khz16BitMonoPcm,
		-1: FormatRiff16Khz16BitMonoPcm,
		0:  FormatRiff24Khz16BitMonoPcm,
		1:  FormatRiff48Khz16BitMonoPcm,
	},
	"mp3": {
		-4: FormatAudio16Khz32KBitRateMp3,
		-3: FormatAudio16Khz64KBitRateMp3,
		-2: FormatAudio16Khz128KBitRateMp3,
		-1: FormatAudio24Khz48KBitRateMp3,
		0:  FormatAudio24Khz96KBitRateMp3,
		1:  FormatAudio24Khz160KBitRateMp3,
		2:  FormatAudio48Khz96KBitRateMp3,
		3:  FormatAudio48Khz192KBitRateMp3,
	},
	"ogg": {
		-1: FormatOgg16Khz16BitMonoOpus,
		0:  FormatOgg24Khz16BitMonoOpus,
		1:  FormatOgg48Khz16BitMonoOpus,
	},
	"webm": {
		-1: FormatWebm16Khz16BitMonoOpus,
		0:  FormatWebm24Khz16BitMonoOpus,
		1:  FormatWebm24Khz16Bit24KbpsOpus,
	},
}

// Formats returns every canonical format identifier.
func Formats() []Format {
	out := make([]Format, len(allFormats))
	copy(out, allFormats)
	return out
}

// Containers returns the known container names in sorted order.
func Containers() []string {
	out := make([]string, 0, len(qualityMap))
	for name := range qualityMap {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Qualities returns the quality levels defined for a container, sorted
// ascending. The second return is false for an unknown container.
func Qualities(container string) ([]int, map[int]Format, bool) {
	m, ok := qualityMap[container]
	if !ok {
		return nil, nil, false
	}
	levels := make([]int, 0, len(m))
	for q := range m {
		levels = append(levels, q)
	}
	sort.Ints(levels)
	return levels, m, true
}

// FromContainerAndQuality resolves a container and quality level to a
// canonical format. When useClosest is set, an out-of-range quality is
// clamped to the nearest defined boundary instead of failing.
func FromContainerAndQuality(container string, quality int, useClosest bool) (Format, error) {
	m, ok := qualityMap[container]
	if !ok {
		return "", errorsx.Newf(errorsx.KindInvalidRequest, "unknown container format: %s", container)
	}
	if format, ok := m[quality]; ok {
		return format, nil
	}
	if useClosest {
		min, max := qualityRange(m)
		if quality < min {
			return m[min], nil
		}
		return m[max], nil
	}
	return "", errorsx.Newf(errorsx.KindInvalidRequest, "invalid quality %d for container %s", quality, container)
}

// Parse validates a caller-supplied format string.
func Parse(value string) (Format, error) {
	for _, f := range allFormats {
		if string(f) == value {
			return f, nil
		}
	}
	return "", errorsx.Newf(errorsx.KindInvalidRequest, "unknown audio format: %s", value)
}

func qualityRange(m map[int]Format) (min, max int) {
	first := true
	for q := range m {
		if first {
			min, max = q, q
			first = false
			continue
		}
		if q < min {
			min = q
		}
		if q > max {
			max = q
		}
	}
	return min, max
}
