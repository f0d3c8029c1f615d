package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/ttsrelay/internal/config"
	"github.com/ekisa-team/ttsrelay/internal/speech"
)

var (
	ssmlText   string
	ssmlLocale string
	ssmlVoice  string
	ssmlFormat string

	ssmlCmd = &cobra.Command{
		Use:   "ssml",
		Short: "Print the markup document the relay would send for a request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(configFile)
			if err != nil {
				return err
			}
			return writeSSML(cmd.OutOrStdout(), catalog, speech.Request{
				Text:   ssmlText,
				Locale: ssmlLocale,
				Voice:  ssmlVoice,
				Format: ssmlFormat,
			})
		},
	}

	voicesCmd = &cobra.Command{
		Use:   "voices",
		Short: "List the supported locales and their voices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(configFile)
			if err != nil {
				return err
			}
			return writeVoices(cmd.OutOrStdout(), catalog)
		},
	}
)

func init() {
	ssmlCmd.Flags().StringVarP(&ssmlText, "text", "t", "", "text to speak")
	ssmlCmd.Flags().StringVarP(&ssmlLocale, "locale", "l", "", "requested locale")
	ssmlCmd.Flags().StringVar(&ssmlVoice, "voice", "", "explicit voice name")
	ssmlCmd.Flags().StringVarP(&ssmlFormat, "format", "f", "", "provider output format")
	_ = ssmlCmd.MarkFlagRequired("text")
}

func loadCatalog(path string) (*speech.Catalog, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Catalog()
}

func writeSSML(w io.Writer, catalog *speech.Catalog, req speech.Request) error {
	resolved, err := catalog.Resolve(req)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", speech.Document(resolved))
	return err
}

func writeVoices(w io.Writer, catalog *speech.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOCALE\tVOICE\tDEFAULT")

	for _, locale := range catalog.Locales() {
		voice, _ := catalog.VoiceFor(locale)
		mark := ""
		if locale == catalog.DefaultLocale() {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", locale, voice, mark)
	}

	return tw.Flush()
}
