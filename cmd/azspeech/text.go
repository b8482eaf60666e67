package main

import (
	"context"

	"github.com/azspeech/azspeech/pkg/ssml"
	"github.com/azspeech/azspeech/pkg/synth"
	"github.com/spf13/cobra"
)

var (
	flagVoice       string
	flagPitch       string
	flagRate        string
	flagStyle       string
	flagRole        string
	flagStyleDegree float64
)

var textCmd = &cobra.Command{
	Use:   "text [text]",
	Short: "Synthesize plain text",
	Long:  "Synthesize plain text. The input comes from the argument, --file, or stdin.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}
		format, err := resolveFormat(cmd)
		if err != nil {
			return err
		}
		opts := textOptions(cmd)
		return synthesize(cmd.Context(), format, func(ctx context.Context, s *synth.Synthesizer) (synth.Result, error) {
			return s.SynthesizeText(ctx, text, opts)
		})
	},
}

// textOptions merges the profile text defaults with any flags that were set.
func textOptions(cmd *cobra.Command) ssml.Options {
	opts := ssml.Options{
		Voice:       profile.Text.Voice,
		Pitch:       profile.Text.Pitch,
		Rate:        profile.Text.Rate,
		Style:       profile.Text.Style,
		Role:        ssml.Role(profile.Text.Role),
		StyleDegree: profile.Text.StyleDegree,
	}
	if cmd.Flags().Changed("voice") {
		opts.Voice = flagVoice
	}
	if cmd.Flags().Changed("pitch") {
		opts.Pitch = flagPitch
	}
	if cmd.Flags().Changed("rate") {
		opts.Rate = flagRate
	}
	if cmd.Flags().Changed("style") {
		opts.Style = flagStyle
	}
	if cmd.Flags().Changed("role") {
		opts.Role = ssml.Role(flagRole)
	}
	if cmd.Flags().Changed("style-degree") {
		opts.StyleDegree = flagStyleDegree
	}
	return opts
}

func init() {
	f := textCmd.Flags()
	f.StringVar(&flagVoice, "voice", "en-US-JennyNeural", "voice to use")
	f.StringVar(&flagPitch, "pitch", "", "pitch adjustment, e.g. +10% or -2st")
	f.StringVar(&flagRate, "rate", "", "speaking rate adjustment, e.g. +20% or slow")
	f.StringVar(&flagStyle, "style", "", "speaking style, e.g. cheerful")
	f.StringVar(&flagRole, "role", "", "speaking role for voices that support role play")
	f.Float64Var(&flagStyleDegree, "style-degree", 0, "style intensity in (0, 2]")
	addInputFlags(textCmd)
	addOutputFlags(textCmd)
	rootCmd.AddCommand(textCmd)
}
