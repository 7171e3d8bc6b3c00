package server

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewRenderID returns a fresh identifier for a render
func NewRenderID() string {
	return uuid.NewString()
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// RenderID returns the id attached to every message
func (wl *WebLogger) RenderID() string {
	return wl.renderID
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	wl.send("info", fmt.Sprintf(format, args...))
}

// Warnf logs a message at warning level
func (wl *WebLogger) Warnf(format string, args ...interface{}) {
	wl.send("warning", fmt.Sprintf(format, args...))
}

func (wl *WebLogger) send(level, message string) {
	// Also write to stdout for server logs
	fmt.Printf("[%s] %s", wl.renderID, message)

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     level,
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}
