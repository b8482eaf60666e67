package main

import (
	"context"

	"github.com/azspeech/azspeech/pkg/synth"
	"github.com/spf13/cobra"
)

var ssmlCmd = &cobra.Command{
	Use:   "ssml [document]",
	Short: "Synthesize an SSML document as-is",
	Long:  "Synthesize an SSML document without any interpolation. The input comes from the argument, --file, or stdin.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readInput(args)
		if err != nil {
			return err
		}
		format, err := resolveFormat(cmd)
		if err != nil {
			return err
		}
		return synthesize(cmd.Context(), format, func(ctx context.Context, s *synth.Synthesizer) (synth.Result, error) {
			return s.SynthesizeSSML(ctx, doc)
		})
	},
}

func init() {
	addInputFlags(ssmlCmd)
	addOutputFlags(ssmlCmd)
	rootCmd.AddCommand(ssmlCmd)
}
