package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/azspeech/azspeech/pkg/audio"
	"github.com/azspeech/azspeech/pkg/errorsx"
	"github.com/azspeech/azspeech/pkg/logging"
	"github.com/azspeech/azspeech/pkg/player"
	"github.com/azspeech/azspeech/pkg/resilience"
	"github.com/azspeech/azspeech/pkg/synth"
	"github.com/spf13/cobra"
)

var (
	flagInputFile  string
	flagOutput     string
	flagContainer  string
	flagQuality    int
	flagFormat     string
	flagUseClosest bool
	flagRetries    int
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagInputFile, "file", "f", "", "read input from a file instead of the argument")
}

func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flagOutput, "output", "o", "", "write audio to a file; plays through the speakers when omitted")
	f.StringVarP(&flagContainer, "container", "c", "", "container format (wav, mp3, ogg, webm)")
	f.IntVarP(&flagQuality, "quality", "q", 0, "quality level within the container")
	f.StringVarP(&flagFormat, "format", "F", "", "full audio format name, overrides container and quality")
	f.BoolVar(&flagUseClosest, "use-closest", false, "clamp an out-of-range quality to the nearest defined level")
	f.IntVar(&flagRetries, "retries", 0, "retry the connection this many times on transient failures")
}

// readInput resolves the input text: positional argument, --file, or stdin.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if flagInputFile != "" {
		data, err := os.ReadFile(flagInputFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// resolveFormat picks the output format from flags and profile defaults.
func resolveFormat(cmd *cobra.Command) (audio.Format, error) {
	if flagFormat != "" {
		return audio.Parse(flagFormat)
	}
	if profile.Output.Format != "" && flagContainer == "" && !cmd.Flags().Changed("quality") {
		return audio.Parse(profile.Output.Format)
	}
	container := flagContainer
	if container == "" {
		container = profile.Output.Container
	}
	quality := profile.Output.Quality
	if cmd.Flags().Changed("quality") {
		quality = flagQuality
	}
	return audio.FromContainerAndQuality(container, quality, flagUseClosest)
}

// synthesize runs one turn and writes or plays the result. Connection
// attempts are retried; a turn is not.
func synthesize(ctx context.Context, format audio.Format, run func(context.Context, *synth.Synthesizer) (synth.Result, error)) error {
	var s *synth.Synthesizer
	policy := resilience.NewRetryPolicy(flagRetries, 0)
	err := policy.Do(ctx, func() error {
		var err error
		s, err = synth.Connect(ctx, synth.Config{
			Auth:     profile.TransportAuth(),
			ProxyURL: profile.Auth.Proxy,
			Format:   format,
			Logger:   logging.NewComponentLogger(logger, "synth"),
		})
		return err
	})
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := run(ctx, s)
	if err != nil {
		if code, _, ok := errorsx.CloseInfo(err); ok && code == "Unknown" {
			return fmt.Errorf("%w\nThis usually indicates a poor internet connection or that the remote service terminated the request. Retry, or shorten the input if you are using the trial service.", err)
		}
		return err
	}

	for _, meta := range result.Metadata {
		logger.Debug("audio metadata", "body", meta)
	}

	if flagOutput != "" {
		return os.WriteFile(flagOutput, result.Audio, 0o644)
	}
	return player.Play(ctx, result.Audio, format)
}
