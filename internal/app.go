package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// TranscriptFetcher retrieves raw subtitle tracks and metadata for a video.
type TranscriptFetcher interface {
	FetchCaptions(ctx context.Context, videoID string) (string, error)
	Metadata(ctx context.Context, videoID string) (*VideoMetadata, error)
}

// SummaryGenerator produces markdown summaries and filename titles.
type SummaryGenerator interface {
	Summarize(ctx context.Context, transcript string, metadata *VideoMetadata) (string, error)
	SummarizeTimestamped(ctx context.Context, transcript string, segments []Segment, videoID string, metadata *VideoMetadata) (string, error)
	Title(ctx context.Context, summary string) (string, error)
}

// Status is the per-item outcome of one pipeline run.
type Status int

const (
	StatusSummarized Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSummarized:
		return "summarized"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome reports what happened to one URL.
type Outcome struct {
	URL     string
	VideoID string
	Path    string
	Status  Status
	Err     error
}

// SummaryResult holds the products of one successful pipeline run.
type SummaryResult struct {
	VideoID  string
	Summary  string
	Title    string
	Metadata *VideoMetadata
}

// App wires the pipeline stages together.
type App struct {
	settings   *Settings
	fetcher    TranscriptFetcher
	summarizer SummaryGenerator
	writer     *Writer
	ui         *UI
}

// AppOption customizes App creation, mainly for tests.
type AppOption func(*App)

// WithFetcher sets a custom transcript fetcher.
func WithFetcher(f TranscriptFetcher) AppOption {
	return func(a *App) { a.fetcher = f }
}

// WithSummarizer sets a custom summary generator.
func WithSummarizer(s SummaryGenerator) AppOption {
	return func(a *App) { a.summarizer = s }
}

// WithWriter sets a custom output writer.
func WithWriter(w *Writer) AppOption {
	return func(a *App) { a.writer = w }
}

// NewApp initializes the application from settings.
func NewApp(settings *Settings, options ...AppOption) (*App, error) {
	ui := NewUI(settings.Verbose, settings.Quiet)

	provider, err := NewProvider(settings)
	if err != nil {
		return nil, err
	}

	app := &App{
		settings:   settings,
		fetcher:    NewYouTube(ui),
		summarizer: NewSummarizer(provider, settings.Params(), ui),
		writer:     NewWriter(settings.OutputDir, settings.SkipExisting),
		ui:         ui,
	}
	for _, option := range options {
		option(app)
	}
	return app, nil
}

// UI exposes the app's terminal output helper.
func (app *App) UI() *UI { return app.ui }

// Transcript fetches and cleans the caption track for a URL.
func (app *App) Transcript(ctx context.Context, url string) (string, error) {
	videoID, err := VideoID(url)
	if err != nil {
		return "", err
	}
	raw, err := app.fetcher.FetchCaptions(ctx, videoID)
	if err != nil {
		return "", err
	}
	transcript := CleanVTT(raw)
	if transcript == "" {
		return "", fmt.Errorf("%w: no text extracted from captions for %s", ErrTranscriptUnavailable, videoID)
	}
	return transcript, nil
}

// Metadata fetches video metadata for a URL.
func (app *App) Metadata(ctx context.Context, url string) (*VideoMetadata, error) {
	videoID, err := VideoID(url)
	if err != nil {
		return nil, err
	}
	return app.fetcher.Metadata(ctx, videoID)
}

// Summarize runs the pipeline for one URL up to (but not including) the
// write: ID extraction, caption download, cleanup, summary and title
// generation.
func (app *App) Summarize(ctx context.Context, url string) (*SummaryResult, error) {
	return app.summarize(ctx, url, false)
}

// SummarizeTimestamped is Summarize with cue timestamps parsed from the raw
// captions and fed to the model so the summary carries clickable timestamp
// links. Used by the assistant-tool server.
func (app *App) SummarizeTimestamped(ctx context.Context, url string) (*SummaryResult, error) {
	return app.summarize(ctx, url, true)
}

func (app *App) summarize(ctx context.Context, url string, timestamped bool) (*SummaryResult, error) {
	videoID, err := VideoID(url)
	if err != nil {
		return nil, err
	}

	app.ui.Verbosef("Fetching transcript for %s\n", videoID)
	raw, err := app.fetcher.FetchCaptions(ctx, videoID)
	if err != nil {
		return nil, err
	}

	transcript := CleanVTT(raw)
	if transcript == "" {
		return nil, fmt.Errorf("%w: no text extracted from captions for %s", ErrTranscriptUnavailable, videoID)
	}
	app.ui.Verbosef("Cleaned transcript: %d characters\n", len(transcript))

	// Metadata enriches the prompt but its absence never fails the run.
	metadata, err := app.fetcher.Metadata(ctx, videoID)
	if err != nil {
		app.ui.Verbosef("Metadata unavailable for %s: %v\n", videoID, err)
		metadata = nil
	}

	app.ui.Verbosef("Generating summary with %s\n", app.settings.Provider)
	var summary string
	if timestamped {
		summary, err = app.summarizer.SummarizeTimestamped(ctx, transcript, ParseVTTSegments(raw), videoID, metadata)
	} else {
		summary, err = app.summarizer.Summarize(ctx, transcript, metadata)
	}
	if err != nil {
		return nil, err
	}

	title, err := app.summarizer.Title(ctx, summary)
	if err != nil {
		// Title generation failing is not worth losing the summary over.
		app.ui.Verbosef("Title generation failed, using fallback: %v\n", err)
		title = fallbackTitle
	}

	return &SummaryResult{
		VideoID:  videoID,
		Summary:  summary,
		Title:    title,
		Metadata: metadata,
	}, nil
}

// ProcessURL runs the full pipeline for one URL, including the skip-existing
// short circuit and the final write.
func (app *App) ProcessURL(ctx context.Context, url string) Outcome {
	videoID, err := VideoID(url)
	if err != nil {
		return Outcome{URL: url, Status: StatusFailed, Err: err}
	}

	if app.settings.SkipExisting {
		if path, ok := app.writer.Existing(videoID); ok {
			return Outcome{URL: url, VideoID: videoID, Path: path, Status: StatusSkipped}
		}
	}

	result, err := app.Summarize(ctx, url)
	if err != nil {
		return Outcome{URL: url, VideoID: videoID, Status: StatusFailed, Err: err}
	}

	path, skipped, err := app.writer.Write(videoID, result.Title, result.Summary)
	if err != nil {
		return Outcome{URL: url, VideoID: videoID, Status: StatusFailed, Err: err}
	}
	status := StatusSummarized
	if skipped {
		status = StatusSkipped
	}
	return Outcome{URL: url, VideoID: videoID, Path: path, Status: status}
}

// ShowSummary runs the pipeline for one URL and renders the resulting
// summary in the terminal. When the item was skipped, the existing file is
// rendered instead.
func (app *App) ShowSummary(ctx context.Context, url string) error {
	outcome := app.ProcessURL(ctx, url)
	if outcome.Err != nil {
		return outcome.Err
	}

	content, err := os.ReadFile(outcome.Path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrFilesystem, outcome.Path, err)
	}

	rendered, err := RenderMarkdown(string(content))
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}

// RunBatch processes URLs sequentially. A failure on one URL never aborts
// the rest, except an authentication error: credentials are batch-global,
// so it is certain to recur. Returns the outcomes and whether every item
// succeeded or was skipped.
func (app *App) RunBatch(ctx context.Context, urls []string) ([]Outcome, bool) {
	var bar interface{ Add(int) error }
	if len(urls) > 1 {
		bar = app.ui.NewProgressBar(len(urls), "Summarizing videos")
	}

	outcomes := make([]Outcome, 0, len(urls))
	aborted := false

	for i, url := range urls {
		if aborted {
			outcomes = append(outcomes, Outcome{
				URL:    url,
				Status: StatusFailed,
				Err:    fmt.Errorf("%w: batch aborted", ErrAuth),
			})
			continue
		}

		app.ui.Verbosef("[%d/%d] Processing %s\n", i+1, len(urls), url)
		outcome := app.ProcessURL(ctx, url)
		outcomes = append(outcomes, outcome)

		if outcome.Err != nil {
			app.ui.Errorf("Error processing %s: %v\n", url, outcome.Err)
			if errors.Is(outcome.Err, ErrAuth) {
				aborted = true
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return outcomes, app.report(outcomes)
}

// report prints the final per-batch tally and returns true when no item
// failed.
func (app *App) report(outcomes []Outcome) bool {
	var summarized, skipped, failed int
	for _, o := range outcomes {
		switch o.Status {
		case StatusSummarized:
			summarized++
			app.ui.Printf("Summarized %s -> %s\n", o.VideoID, o.Path)
		case StatusSkipped:
			skipped++
			app.ui.Printf("Skipped %s (already summarized)\n", o.VideoID)
		case StatusFailed:
			failed++
		}
	}
	if len(outcomes) > 1 {
		app.ui.Printf("Done: %d summarized, %d skipped, %d failed\n", summarized, skipped, failed)
	}
	return failed == 0
}
