package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ytsum/internal"
)

// metadataCmd prints video metadata as JSON.
var metadataCmd = &cobra.Command{
	Use:   "metadata [YouTube URL]",
	Short: "Print metadata of a YouTube video as JSON",
	Example: `  # Get metadata for a video
  ytsum metadata "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Pretty-print the JSON
  ytsum metadata "https://youtu.be/dQw4w9WgXcQ" --pretty`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := internal.NewApp(settings)
		if err != nil {
			return err
		}

		metadata, err := app.Metadata(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var data []byte
		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			data, err = json.MarshalIndent(metadata, "", "  ")
		} else {
			data, err = json.Marshal(metadata)
		}
		if err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}

		fmt.Println(string(data))
		return nil
	},
}

func init() {
	metadataCmd.Flags().Bool("pretty", false, "Format output as pretty JSON")
	rootCmd.AddCommand(metadataCmd)
}
