package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"ytsum/internal"
)

// cpCmd copies the cleaned transcript to the system clipboard instead of
// printing it.
var cpCmd = &cobra.Command{
	Use:   "cp [YouTube URL]",
	Short: "Copy the transcript of a YouTube video to the clipboard",
	Example: `  # Copy transcript to clipboard
  ytsum cp "https://www.youtube.com/watch?v=dQw4w9WgXcQ"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := internal.NewApp(settings)
		if err != nil {
			return err
		}

		transcript, err := app.Transcript(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(transcript); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		app.UI().Printf("Transcript copied to clipboard\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cpCmd)
}
