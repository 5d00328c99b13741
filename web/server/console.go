package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// maxConsoleMessages bounds the messages kept per render
const maxConsoleMessages = 100

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// infoLogger is the subset of echo.Logger used for server logs
type infoLogger interface {
	Infof(format string, args ...interface{})
}

// WebLogger implements core.Logger for a single render request. Messages go
// to the server log tagged with the render ID and are kept for the response.
type WebLogger struct {
	renderID string
	logger   infoLogger

	mu       sync.Mutex
	messages []ConsoleMessage
}

var _ core.Logger = (*WebLogger)(nil)

// NewWebLogger creates a new web logger for a specific render. logger may be nil.
func NewWebLogger(renderID string, logger infoLogger) *WebLogger {
	return &WebLogger{
		renderID: renderID,
		logger:   logger,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	if wl.logger != nil {
		wl.logger.Infof("[%s] %s", wl.renderID, message)
	}

	wl.mu.Lock()
	defer wl.mu.Unlock()
	if len(wl.messages) >= maxConsoleMessages {
		// Drop the oldest
		wl.messages = wl.messages[1:]
	}
	wl.messages = append(wl.messages, ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	})
}

// Messages returns a copy of the recorded messages
func (wl *WebLogger) Messages() []ConsoleMessage {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	return append([]ConsoleMessage(nil), wl.messages...)
}

// RenderID returns the ID this logger tags messages with
func (wl *WebLogger) RenderID() string {
	return wl.renderID
}
