package main

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/ttsrelay/internal/config"
	"github.com/ekisa-team/ttsrelay/internal/envvar"
)

// Version is set at build time.
var Version = "dev"

var (
	configFile string
	logFile    string
	logToFile  bool

	rootCmd = &cobra.Command{
		Use:           "ttsrelay",
		Short:         "Relay text-to-speech requests to the speech provider",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
)

func defaultConfigFile() string {
	if p := os.Getenv(envvar.TTSRelayConfig); p != "" {
		return p
	}
	return path.Join(config.DefaultConfigPath(), "config.yaml")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile(), "path to config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "logs/ttsrelay.log", "path to log file")
	rootCmd.PersistentFlags().BoolVar(&logToFile, "log-to-file", false, "also write JSON logs to --log-file")

	rootCmd.AddCommand(serveCmd, ssmlCmd, voicesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
