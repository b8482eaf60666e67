package main

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/azspeech/azspeech/pkg/config"
	"github.com/azspeech/azspeech/pkg/logging"
	"github.com/dimiro1/banner"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

var (
	flagProfile  string
	flagEndpoint string
	flagKey      string
	flagToken    string
	flagProxy    string
	flagVerbose  bool

	profile config.Profile
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "azspeech",
	Short:         "Speech synthesis from your terminal",
	Long:          "azspeech synthesizes speech through the Azure Cognitive Services speech service, streaming audio over a websocket connection, optionally through a SOCKS5 or HTTP proxy.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := flagProfile
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		profile, err = config.Load(path)
		if err != nil {
			return err
		}

		// Flags override the profile.
		if flagEndpoint != "" {
			profile.Auth.Endpoint = flagEndpoint
		}
		if flagKey != "" {
			profile.Auth.Key = flagKey
		}
		if flagToken != "" {
			profile.Auth.Token = flagToken
		}
		if flagProxy != "" {
			profile.Auth.Proxy = flagProxy
		}

		level := profile.LogLevel
		if flagVerbose {
			level = "debug"
		}
		logger = logging.Setup(level, profile.LogFormat)
		if flagVerbose {
			printBanner()
		}
		return nil
	},
}

func printBanner() {
	tpl := "{{ .Title \"azspeech\" \"\" 0 }}\nVersion: " + version + "\n"
	banner.Init(os.Stderr, true, true, bytes.NewBufferString(tpl))
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagProfile, "profile", "", "path to the profile file")
	pf.StringVar(&flagEndpoint, "endpoint", "", "websocket endpoint of the synthesis service")
	pf.StringVar(&flagKey, "key", "", "subscription key")
	pf.StringVar(&flagToken, "token", "", "authorization token")
	pf.StringVar(&flagProxy, "proxy", "", "proxy url (socks5:// or http://)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}
