package internal

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying pipeline failures. Batch processing inspects
// these with errors.Is to decide whether to skip an item or abort the run.
var (
	ErrConfig                = errors.New("invalid configuration")
	ErrInvalidURL            = errors.New("not a recognized YouTube URL")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrAuth                  = errors.New("missing or invalid API credentials")
	ErrProvider              = errors.New("provider request failed")
	ErrFilesystem            = errors.New("filesystem error")
)

// ErrNoCaptions is a transcript failure with a distinct reason: the video
// simply has no caption track, as opposed to a download/tool failure.
var ErrNoCaptions = fmt.Errorf("%w: video has no captions", ErrTranscriptUnavailable)

// ValidationError collects every invalid settings field found during a
// single validation pass.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Fields, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrConfig }
