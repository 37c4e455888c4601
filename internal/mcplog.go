package internal

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

// The stdio MCP transport owns stdout, so server diagnostics go to a log
// file in the cache directory instead.
var (
	mcpLogger     *log.Logger
	mcpLoggerOnce sync.Once
	mcpLogEnabled bool
)

// InitMCPLogging sets up MCP file logging according to the settings.
func InitMCPLogging(settings *Settings) {
	mcpLoggerOnce.Do(func() {
		if !settings.MCPLog {
			return
		}
		logDir := filepath.Join(xdg.CacheHome, "ytsum")
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return
		}
		logFile, err := os.OpenFile(filepath.Join(logDir, "mcp.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		mcpLogger = log.New(logFile, "", log.LstdFlags|log.Lmicroseconds)
		mcpLogEnabled = true
	})
}

func mcpLogf(level, format string, args ...any) {
	if !mcpLogEnabled || mcpLogger == nil {
		return
	}
	mcpLogger.Printf("[MCP] [%s] "+format, append([]any{level}, args...)...)
}

// MCPLogInfo logs an info message.
func MCPLogInfo(format string, args ...any) {
	mcpLogf("INFO", format, args...)
}

// MCPLogError logs an error message.
func MCPLogError(format string, args ...any) {
	mcpLogf("ERROR", format, args...)
}
