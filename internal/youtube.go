package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// videoIDPattern matches YouTube's 11-character video identifiers.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoID extracts the canonical video identifier from a YouTube URL.
// Supported shapes: watch?v=, youtu.be/, shorts/, and embed/ URLs.
// Pure function, no side effects.
func VideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	host := strings.TrimPrefix(u.Host, "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			id = v
			break
		}
		// shorts/ and embed/ URLs carry the ID as the last path element
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 && (parts[0] == "shorts" || parts[0] == "embed") {
			id = parts[1]
		}
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return id, nil
}

// WatchURL builds the canonical long-form URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// TimestampLink builds a watch URL that starts playback at the given second.
func TimestampLink(videoID string, seconds int) string {
	return fmt.Sprintf("%s&t=%ds", WatchURL(videoID), seconds)
}

// VideoMetadata contains YouTube video information from yt-dlp.
type VideoMetadata struct {
	Title       string  `json:"title"`
	Channel     string  `json:"channel"`
	Uploader    string  `json:"uploader"`
	UploadDate  string  `json:"upload_date"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	ViewCount   int64   `json:"view_count"`
}

// YouTube fetches subtitle tracks and metadata via yt-dlp.
type YouTube struct {
	ui *UI
}

// NewYouTube creates a new YouTube downloader.
func NewYouTube(ui *UI) *YouTube {
	return &YouTube{ui: ui}
}

// FetchCaptions downloads the best available English subtitle track for a
// video (manual captions preferred, auto-generated as fallback) in VTT
// format and returns its raw contents.
func (yt *YouTube) FetchCaptions(ctx context.Context, videoID string) (string, error) {
	yt.ui.Verbosef("Downloading subtitles for %s\n", videoID)

	tempDir, err := os.MkdirTemp("", "ytsum-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp directory: %v", ErrFilesystem, err)
	}
	defer os.RemoveAll(tempDir)

	dl := ytdlp.New().
		WriteSubs().
		WriteAutoSubs().
		SubLangs("en").
		SubFormat("vtt").
		SkipDownload().
		NoPlaylist().
		Output(filepath.Join(tempDir, "%(id)s.%(ext)s"))

	result, runErr := dl.Run(ctx, WatchURL(videoID))

	// yt-dlp may exit non-zero and still have produced a usable subtitle
	// file, so check for output before failing.
	subtitleFile := findSubtitleFile(tempDir, videoID)
	if subtitleFile == "" {
		if runErr != nil {
			stderr := ""
			if result != nil {
				stderr = strings.TrimSpace(result.Stderr)
			}
			yt.ui.Verbosef("Subtitle download failed: %v\n%s\n", runErr, stderr)
			return "", fmt.Errorf("%w: yt-dlp failed for %s: %v", ErrTranscriptUnavailable, videoID, runErr)
		}
		return "", fmt.Errorf("%w (%s)", ErrNoCaptions, videoID)
	}

	content, err := os.ReadFile(subtitleFile)
	if err != nil {
		return "", fmt.Errorf("%w: reading subtitle file: %v", ErrTranscriptUnavailable, err)
	}

	yt.ui.Verbosef("Downloaded subtitles: %s (%d bytes)\n", filepath.Base(subtitleFile), len(content))
	return string(content), nil
}

// findSubtitleFile locates a produced VTT file, preferring the plain English
// track over regional or auto-generated variants.
func findSubtitleFile(dir, videoID string) string {
	preferred := filepath.Join(dir, videoID+".en.vtt")
	if FileExists(preferred) {
		return preferred
	}
	matches, err := filepath.Glob(filepath.Join(dir, videoID+"*.vtt"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}

// Metadata fetches video details using yt-dlp's JSON dump.
func (yt *YouTube) Metadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	yt.ui.Verbosef("Extracting metadata for %s\n", videoID)

	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, WatchURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("extracting video metadata: %w", err)
	}

	var metadata VideoMetadata
	if err := json.Unmarshal([]byte(result.Stdout), &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}
	return &metadata, nil
}

// FileExists checks if a file exists.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}
