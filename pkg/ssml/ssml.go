// Package ssml renders plain text into the SSML document consumed by the
// synthesis service, applying voice, prosody and expression options.
package ssml

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/azspeech/azspeech/pkg/errorsx"
)

// Role is a speaking role for voices that support role play.
type Role string

const (
	RoleGirl             Role = "Girl"
	RoleBoy              Role = "Boy"
	RoleYoungAdultFemale Role = "YoungAdultFemale"
	RoleYoungAdultMale   Role = "YoungAdultMale"
	RoleOlderAdultFemale Role = "OlderAdultFemale"
	RoleOlderAdultMale   Role = "OlderAdultMale"
	RoleSeniorFemale     Role = "SeniorFemale"
	RoleSeniorMale       Role = "SeniorMale"
)

var knownRoles = map[Role]bool{
	RoleGirl:             true,
	RoleBoy:              true,
	RoleYoungAdultFemale: true,
	RoleYoungAdultMale:   true,
	RoleOlderAdultFemale: true,
	RoleOlderAdultMale:   true,
	RoleSeniorFemale:     true,
	RoleSeniorMale:       true,
}

// Roles returns the known speaking roles.
func Roles() []Role {
	return []Role{
		RoleGirl, RoleBoy,
		RoleYoungAdultFemale, RoleYoungAdultMale,
		RoleOlderAdultFemale, RoleOlderAdultMale,
		RoleSeniorFemale, RoleSeniorMale,
	}
}

// Options controls how plain text is rendered into SSML.
type Options struct {
	Voice       string
	Pitch       string
	Rate        string
	Style       string
	Role        Role
	StyleDegree float64
}

// Interpolate renders text into a complete SSML document. Text content is
// XML-escaped; option values are validated before use.
func Interpolate(text string, opts Options) (string, error) {
	if strings.TrimSpace(opts.Voice) == "" {
		return "", errorsx.New(errorsx.KindSsml, "a voice is required to build SSML")
	}
	if opts.Role != "" && !knownRoles[opts.Role] {
		return "", errorsx.Newf(errorsx.KindSsml, "unknown speaking role: %s", opts.Role)
	}
	if opts.StyleDegree != 0 && (opts.StyleDegree <= 0 || opts.StyleDegree > 2) {
		return "", errorsx.Newf(errorsx.KindSsml, "style degree %v is out of range (0, 2]", opts.StyleDegree)
	}

	style := opts.Style
	if style == "" {
		style = "general"
	}

	var b strings.Builder
	b.WriteString(`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xmlns:mstts="http://www.w3.org/2001/mstts" xml:lang="en-US">`)
	b.WriteString(`<voice name="`)
	b.WriteString(escape(opts.Voice))
	b.WriteString(`"><mstts:express-as style="`)
	b.WriteString(escape(style))
	b.WriteString(`"`)
	if opts.StyleDegree != 0 {
		b.WriteString(` styledegree="`)
		b.WriteString(strconv.FormatFloat(opts.StyleDegree, 'f', -1, 64))
		b.WriteString(`"`)
	}
	if opts.Role != "" {
		b.WriteString(` role="`)
		b.WriteString(string(opts.Role))
		b.WriteString(`"`)
	}
	b.WriteString(`><prosody pitch="`)
	b.WriteString(escape(opts.Pitch))
	b.WriteString(`" rate="`)
	b.WriteString(escape(opts.Rate))
	b.WriteString(`">`)
	b.WriteString(escape(text))
	b.WriteString(`</prosody></mstts:express-as></voice></speak>`)
	return b.String(), nil
}

func escape(s string) string {
	var b strings.Builder
	// xml.EscapeText only fails on a failing writer; strings.Builder never does.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
