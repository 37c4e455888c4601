package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"ytsum/internal"
)

var settings *internal.Settings

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ytsum [YouTube URL]",
	Short: "Summarize YouTube videos from their captions using AI",
	Long: `ytsum downloads the caption track of a YouTube video, cleans it into a
plain transcript, and generates a structured markdown summary with the
configured LLM provider (OpenAI, Anthropic, or a local Ollama instance).

Summaries are written to <title>.<video_id>.md in the output directory.
Videos that already have a summary file are skipped unless skip-existing
is disabled in the configuration.`,
	Example: `  # Summarize a single video
  ytsum "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Summarize a batch of URLs, one per line
  cat urls.txt | ytsum

  # Write summaries somewhere else
  ytsum -o ~/summaries "https://youtu.be/dQw4w9WgXcQ"

  # Use a different provider for this run
  ytsum --provider ollama "https://www.youtube.com/watch?v=dQw4w9WgXcQ"`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := collectURLs(args)
		if err != nil {
			return err
		}

		app, err := internal.NewApp(settings)
		if err != nil {
			return err
		}

		if show, _ := cmd.Flags().GetBool("show"); show && len(urls) == 1 {
			return app.ShowSummary(cmd.Context(), urls[0])
		}

		outcomes, ok := app.RunBatch(cmd.Context(), urls)
		if !ok {
			failed := 0
			for _, o := range outcomes {
				if o.Status == internal.StatusFailed {
					failed++
				}
			}
			return fmt.Errorf("%d of %d items failed", failed, len(outcomes))
		}
		return nil
	},
}

// collectURLs reads the single URL argument, or line-delimited URLs from
// stdin when no argument is given and input is piped.
func collectURLs(args []string) ([]string, error) {
	if len(args) == 1 {
		return []string{args[0]}, nil
	}

	if !internal.StdinIsPiped() {
		return nil, fmt.Errorf("no input: pass a YouTube URL or pipe URLs via stdin (see --help)")
	}

	var urls []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url != "" {
			urls = append(urls, url)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading URLs from stdin: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs found on stdin")
	}
	return urls, nil
}

// loadSettings builds the immutable settings for this invocation: config
// file merged over defaults, then flag overrides.
func loadSettings(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")

	var err error
	settings, err = internal.LoadSettings(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("output-dir") {
		settings.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("provider") {
		settings.Provider, _ = cmd.Flags().GetString("provider")
	}
	if cmd.Flags().Changed("model") {
		model, _ := cmd.Flags().GetString("model")
		params := settings.Providers[settings.Provider]
		params.Model = model
		settings.Providers[settings.Provider] = params
	}
	if cmd.Flags().Changed("skip-existing") {
		settings.SkipExisting, _ = cmd.Flags().GetBool("skip-existing")
	}
	settings.Verbose, _ = cmd.Flags().GetBool("verbose")
	settings.Quiet, _ = cmd.Flags().GetBool("quiet")

	return settings.Validate()
}

// Execute adds all child commands to the root command and runs it. Called
// by main.main().
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	rootCmd.SetContext(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./config.yaml, then $XDG_CONFIG_HOME/ytsum/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress status output")
	rootCmd.PersistentFlags().StringP("output-dir", "o", "", "Directory to save summaries (overrides config)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: openai, anthropic, or ollama (overrides config)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model to use for the selected provider (overrides config)")
	rootCmd.PersistentFlags().Bool("skip-existing", true, "Skip videos that already have a summary file")
	rootCmd.Flags().Bool("show", false, "Render the summary in the terminal after writing it")
}
