package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

var (
	useColors   = true
	quietMode   = false
	logMessages []LogMessage
	logMutex    sync.RWMutex
)

// LogMessage represents a stored log message
type LogMessage struct {
	Message   string
	Color     string
	Timestamp time.Time
}

// SetColorMode enables or disables color output
func SetColorMode(enabled bool) {
	useColors = enabled && supportsColor()
}

// SetQuietMode enables or disables quiet mode
func SetQuietMode(enabled bool) {
	quietMode = enabled
}

// supportsColor checks if the terminal supports color output
func supportsColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// colorize applies color to text if colors are enabled
func colorize(color, text string) string {
	if useColors {
		return color + text + Reset
	}
	return text
}

// Info prints an information message in cyan
func Info(message string) {
	if quietMode {
		return
	}
	fmt.Println(colorize(Cyan, message))
	storeMessage(message, Cyan)
}

// Warning prints a warning message in yellow
func Warning(message string) {
	if quietMode {
		return
	}
	fmt.Println(colorize(Yellow, message))
	storeMessage(message, Yellow)
}

// Error prints an error message in red
func Error(message string) {
	if quietMode {
		return
	}
	fmt.Println(colorize(Red, message))
	storeMessage(message, Red)
}

// Success prints a success message in green
func Success(message string) {
	if quietMode {
		return
	}
	fmt.Println(colorize(Green, message))
	storeMessage(message, Green)
}

// storeMessage stores a log message for later retrieval
func storeMessage(message, color string) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logMessages = append(logMessages, LogMessage{
		Message:   message,
		Color:     color,
		Timestamp: time.Now(),
	})
}

// GetStoredMessages returns all stored log messages
func GetStoredMessages() []LogMessage {
	logMutex.RLock()
	defer logMutex.RUnlock()
	messages := make([]LogMessage, len(logMessages))
	copy(messages, logMessages)
	return messages
}
