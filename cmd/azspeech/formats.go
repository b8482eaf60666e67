package main

import (
	"fmt"

	"github.com/azspeech/azspeech/pkg/audio"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "list-formats",
	Short: "List every audio format the service accepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, f := range audio.Formats() {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

var qualitiesCmd = &cobra.Command{
	Use:   "list-qualities",
	Short: "List the quality levels of each container format",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, container := range audio.Containers() {
			levels, byLevel, _ := audio.Qualities(container)
			fmt.Fprintf(out, "Qualities for %s:\n", container)
			for _, q := range levels {
				fmt.Fprintf(out, "  %3d: %s\n", q, byLevel[q])
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(qualitiesCmd)
}
