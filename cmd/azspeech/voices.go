package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/azspeech/azspeech/pkg/voice"
	"github.com/spf13/cobra"
)

var (
	flagVoicesLocale string
	flagVoicesName   string
)

var voicesCmd = &cobra.Command{
	Use:   "list-voices",
	Short: "List available voices",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := voice.Client{
			Endpoint: listEndpoint(),
			Key:      profile.Auth.Key,
		}
		voices, err := client.List(cmd.Context())
		if err != nil {
			return err
		}
		if flagVoicesLocale != "" {
			voices = voice.FilterByLocale(voices, flagVoicesLocale)
		}
		if flagVoicesName != "" {
			voices = voice.FilterByName(voices, flagVoicesName)
		}
		for _, v := range voices {
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
		}
		return nil
	},
}

// listEndpoint derives the voice catalog URL from the configured websocket
// endpoint, falling back to the public catalog.
func listEndpoint() string {
	endpoint := profile.Auth.Endpoint
	if endpoint == "" {
		return voice.DefaultListEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return voice.DefaultListEndpoint
	}
	scheme := "https"
	if u.Scheme == "ws" {
		scheme = "http"
	}
	if !strings.Contains(u.Host, ".tts.speech.") && !strings.Contains(u.Host, ".api.speech.") {
		return voice.DefaultListEndpoint
	}
	return scheme + "://" + u.Host + "/cognitiveservices/voices/list"
}

func init() {
	f := voicesCmd.Flags()
	f.StringVarP(&flagVoicesLocale, "locale", "l", "", "only voices for this locale, e.g. en-US")
	f.StringVar(&flagVoicesName, "voice", "", "only the voice with this short name")
	rootCmd.AddCommand(voicesCmd)
}
