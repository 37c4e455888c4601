package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the summarization pipeline as MCP tools. Tools are
// registered explicitly at construction: a fixed mapping from operation name
// to handler, no dynamic discovery.
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates the MCP server and registers its tools.
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytsum-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{app: app, mcpServer: mcpServer}
	s.registerTools()
	return s
}

func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("summarize_youtube_video",
		mcp.WithDescription("Download the transcript of a YouTube video and generate a markdown summary with clickable timestamp links using the configured LLM provider. Optionally saves the summary to a file named <title>.<video_id>.md."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
		mcp.WithBoolean("save_to_file",
			mcp.Description("Whether to save the summary to a markdown file"),
			mcp.DefaultBool(true),
		),
		mcp.WithString("output_dir",
			mcp.Description("Directory to save the summary file (defaults to the configured output directory)"),
		),
	), s.handleSummarize)
}

// handleSummarize implements the summarize_youtube_video tool.
func (s *MCPServer) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	saveToFile := request.GetBool("save_to_file", true)
	outputDir := request.GetString("output_dir", s.app.settings.OutputDir)

	MCPLogInfo("summarize_youtube_video url=%s save=%t dir=%s", url, saveToFile, outputDir)

	result, err := s.app.SummarizeTimestamped(ctx, url)
	if err != nil {
		MCPLogError("summarize failed for %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("summarization failed", err), nil
	}

	var buf strings.Builder
	buf.WriteString("# YouTube Video Summary\n\n")
	buf.WriteString(fmt.Sprintf("**Video ID:** %s\n", result.VideoID))
	buf.WriteString(fmt.Sprintf("**URL:** %s\n", WatchURL(result.VideoID)))
	if result.Metadata != nil {
		buf.WriteString(fmt.Sprintf("**Video Title:** %s\n", result.Metadata.Title))
		buf.WriteString(fmt.Sprintf("**Channel:** %s\n", result.Metadata.Channel))
	}
	buf.WriteString(fmt.Sprintf("**LLM:** %s/%s\n", s.app.settings.Provider, s.app.settings.Params().Model))
	buf.WriteString("\n## Summary\n\n")
	buf.WriteString(result.Summary)

	if saveToFile {
		writer := NewWriter(outputDir, s.app.settings.SkipExisting)
		path, skipped, err := writer.Write(result.VideoID, result.Title, result.Summary)
		switch {
		case err != nil:
			MCPLogError("save failed for %s: %v", result.VideoID, err)
			buf.WriteString(fmt.Sprintf("\n\n**Warning:** failed to save file: %v", err))
		case skipped:
			buf.WriteString(fmt.Sprintf("\n\n**Existing summary** at %s (skip-existing enabled)", path))
		default:
			buf.WriteString(fmt.Sprintf("\n\n**File saved** to %s", path))
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(buf.String())},
	}, nil
}

// Start serves MCP on the requested transport: stdio by default, or
// streamable HTTP on the given port.
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(fmt.Sprintf(":%d", port))
	}
	return server.ServeStdio(s.mcpServer)
}
