package main

import (
	"fmt"
	"io"
	"langtrack/internal/language"
	"strings"

	"github.com/spf13/cobra"
)

func newDetectCommand() *cobra.Command {
	var (
		title    string
		audio    string
		captions []string
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect a video's language from its signals",
		Long: "Detect runs the language detector offline. Captions are given as \"code\" " +
			"or \"code:asr\" for auto-generated tracks.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signals := language.Signals{
				Title:         title,
				DeclaredAudio: audio,
				Captions:      parseCaptions(captions),
			}
			printDetection(cmd.OutOrStdout(), signals)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Video title")
	cmd.Flags().StringVar(&audio, "audio", "", "Declared audio language")
	cmd.Flags().StringArrayVar(&captions, "caption", nil, "Caption track, repeatable (e.g. es or es:asr)")

	return cmd
}

func parseCaptions(values []string) []language.CaptionTrack {
	tracks := make([]language.CaptionTrack, 0, len(values))
	for _, v := range values {
		code, kind, _ := strings.Cut(strings.TrimSpace(v), ":")
		if code == "" {
			continue
		}
		tracks = append(tracks, language.CaptionTrack{
			Code: code,
			ASR:  strings.EqualFold(kind, "asr"),
		})
	}
	return tracks
}

func printDetection(out io.Writer, signals language.Signals) {
	lang, src := language.DetectWithSource(signals)
	if src == language.SourceNone {
		fmt.Fprintf(out, "Language: %s (%s)\n", language.Unknown, language.DisplayName(language.Unknown))
		fmt.Fprintln(out, "Source:   none")
		return
	}
	fmt.Fprintf(out, "Language: %s (%s)\n", lang, language.DisplayName(lang))
	fmt.Fprintf(out, "Source:   %s\n", src)
}
