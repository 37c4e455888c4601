package internal

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func summarizeRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = "summarize_youtube_video"
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("tool result content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func testMCPServer(t *testing.T, settings *Settings) *MCPServer {
	t.Helper()
	fetcher := &fakeFetcher{captions: sampleVTT}
	summarizer := &fakeSummarizer{summary: "## Key Points\n\n- body\n", title: "Test Video"}
	return NewMCPServer(testApp(t, settings, fetcher, summarizer))
}

func TestHandleSummarizeSavesByDefault(t *testing.T) {
	settings := testSettings(t, false)
	s := testMCPServer(t, settings)

	result, err := s.handleSummarize(context.Background(), summarizeRequest(map[string]any{"url": testURL}))
	if err != nil {
		t.Fatalf("handleSummarize() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("tool result is an error: %s", resultText(t, result))
	}

	text := resultText(t, result)
	for _, want := range []string{
		"# YouTube Video Summary",
		"**Video ID:** dQw4w9WgXcQ",
		"**URL:** https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"**Video Title:** Test Video",
		"**Channel:** Test Channel",
		"## Summary",
		"## Key Points",
		"**File saved** to",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("tool result missing %q:\n%s", want, text)
		}
	}

	path := filepath.Join(settings.OutputDir, "test_video.dQw4w9WgXcQ.md")
	if !FileExists(path) {
		t.Errorf("summary file not saved at %s", path)
	}
}

func TestHandleSummarizeNoSave(t *testing.T) {
	settings := testSettings(t, false)
	s := testMCPServer(t, settings)

	result, err := s.handleSummarize(context.Background(), summarizeRequest(map[string]any{
		"url":          testURL,
		"save_to_file": false,
	}))
	if err != nil {
		t.Fatal(err)
	}

	text := resultText(t, result)
	if strings.Contains(text, "File saved") {
		t.Errorf("tool result mentions a saved file: %s", text)
	}
	if FileExists(filepath.Join(settings.OutputDir, "test_video.dQw4w9WgXcQ.md")) {
		t.Error("summary file written despite save_to_file=false")
	}
}

func TestHandleSummarizeOutputDirOverride(t *testing.T) {
	settings := testSettings(t, false)
	s := testMCPServer(t, settings)
	override := t.TempDir()

	result, err := s.handleSummarize(context.Background(), summarizeRequest(map[string]any{
		"url":        testURL,
		"output_dir": override,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("tool result is an error: %s", resultText(t, result))
	}

	if !FileExists(filepath.Join(override, "test_video.dQw4w9WgXcQ.md")) {
		t.Error("summary file not saved in the override directory")
	}
	if FileExists(filepath.Join(settings.OutputDir, "test_video.dQw4w9WgXcQ.md")) {
		t.Error("summary file also written to the default directory")
	}
}

func TestHandleSummarizeSkipExisting(t *testing.T) {
	settings := testSettings(t, true)
	s := testMCPServer(t, settings)
	req := summarizeRequest(map[string]any{"url": testURL})

	if _, err := s.handleSummarize(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	result, err := s.handleSummarize(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Existing summary") {
		t.Errorf("second call does not report the existing file:\n%s", text)
	}
}

func TestHandleSummarizeInvalidURL(t *testing.T) {
	s := testMCPServer(t, testSettings(t, false))

	result, err := s.handleSummarize(context.Background(), summarizeRequest(map[string]any{
		"url": "https://example.com/not-youtube",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("tool result for an invalid URL is not an error")
	}
}

func TestHandleSummarizeMissingURL(t *testing.T) {
	s := testMCPServer(t, testSettings(t, false))

	result, err := s.handleSummarize(context.Background(), summarizeRequest(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("tool result without a url parameter is not an error")
	}
}
