package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ytsum/internal"
)

// transcriptCmd fetches and prints the cleaned transcript without
// summarizing.
var transcriptCmd = &cobra.Command{
	Use:   "transcript [YouTube URL]",
	Short: "Print the cleaned transcript of a YouTube video",
	Example: `  # Print the transcript to stdout
  ytsum transcript "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Save the transcript to a file
  ytsum transcript "https://youtu.be/dQw4w9WgXcQ" --output transcript.txt`,
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

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(transcript), 0644); err != nil {
				return fmt.Errorf("writing transcript: %w", err)
			}
			return nil
		}

		fmt.Println(transcript)
		return nil
	},
}

func init() {
	transcriptCmd.Flags().String("output", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcriptCmd)
}
