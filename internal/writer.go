package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// fallbackTitle names the output file when title generation fails.
const fallbackTitle = "summary"

// maxTitleLength caps the sanitized title portion of a filename.
const maxTitleLength = 80

var unsafeRuns = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeTitle converts a generated title into its filename form:
// lowercase, with whitespace and punctuation runs replaced by single
// underscores and everything outside [a-z0-9_] stripped. Deterministic; an
// empty result falls back to "summary".
func SanitizeTitle(title string) string {
	s := strings.ToLower(title)
	s = unsafeRuns.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > maxTitleLength {
		s = strings.TrimRight(s[:maxTitleLength], "_")
	}
	if s == "" {
		return fallbackTitle
	}
	return s
}

// SummaryFilename builds the output filename for a video.
func SummaryFilename(title, videoID string) string {
	return SanitizeTitle(title) + "." + videoID + ".md"
}

// Writer persists summaries to the output directory, honoring the
// skip-existing policy keyed on the video identifier.
type Writer struct {
	outputDir    string
	skipExisting bool
}

// NewWriter creates a summary writer for the given directory.
func NewWriter(outputDir string, skipExisting bool) *Writer {
	return &Writer{outputDir: outputDir, skipExisting: skipExisting}
}

// Existing returns the path of a previously written summary for the video,
// if any. Any title prefix matches; the video ID is the dedup key.
func (w *Writer) Existing(videoID string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(w.outputDir, "*."+videoID+".md"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// Write saves the summary markdown. When skip-existing is enabled and a file
// for the video already exists, nothing is written and skipped is true.
// With skip-existing disabled an existing file is overwritten.
func (w *Writer) Write(videoID, title, summary string) (path string, skipped bool, err error) {
	if w.skipExisting {
		if existing, ok := w.Existing(videoID); ok {
			return existing, true, nil
		}
	}

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", false, fmt.Errorf("%w: creating output directory: %v", ErrFilesystem, err)
	}

	path = filepath.Join(w.outputDir, SummaryFilename(title, videoID))
	if err := os.WriteFile(path, []byte(summary), 0644); err != nil {
		return "", false, fmt.Errorf("%w: writing %s: %v", ErrFilesystem, path, err)
	}
	return path, false, nil
}
