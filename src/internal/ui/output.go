// Package ui provides colored console output utilities for user interfaces
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	// Color functions for different message types
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	noticeColor  = color.New(color.FgBlue)
	debugColor   = color.New(color.FgWhite, color.Faint)

	// Symbols
	successSymbol = "✓"
	errorSymbol   = "✗"
	warningSymbol = "⚠"
	infoSymbol    = "→"
	debugSymbol   = "·"
)

var verboseMode bool

// SetVerbose toggles debug output.
func SetVerbose(on bool) {
	verboseMode = on
}

// IsVerbose reports whether debug output is enabled.
func IsVerbose() bool {
	return verboseMode
}

// CheckVerboseEnv enables verbose mode when NVMAN_VERBOSE is 1 or true.
func CheckVerboseEnv() {
	switch os.Getenv("NVMAN_VERBOSE") {
	case "1", "true":
		verboseMode = true
	}
}

// Success prints a success message in green with a checkmark
func Success(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = successColor.Printf("%s %s\n", successSymbol, message)
}

// Error prints an error message in red with an X
func Error(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = errorColor.Printf("%s %s\n", errorSymbol, message)
}

// Warning prints a warning message in yellow with a warning symbol
func Warning(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = warningColor.Printf("%s %s\n", warningSymbol, message)
}

// Info prints an info message in cyan with an arrow
func Info(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = infoColor.Printf("%s %s\n", infoSymbol, message)
}

// Notice prints a side-channel note in blue, indented. Scope coercion
// notes from the adapters come through here.
func Notice(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_, _ = noticeColor.Printf("  %s %s\n", infoSymbol, message)
}

// Debug prints a dim diagnostic line when verbose mode is on
func Debug(format string, args ...interface{}) {
	if !verboseMode {
		return
	}
	message := fmt.Sprintf(format, args...)
	_, _ = debugColor.Printf("%s %s\n", debugSymbol, message)
}

// Debugf is Debug without the trailing newline or symbol
func Debugf(format string, args ...interface{}) {
	if !verboseMode {
		return
	}
	_, _ = debugColor.Printf(format, args...)
}

// Println prints a regular message without color
func Println(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Printf prints a regular message without color (no newline)
func Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// Header prints a bold header message
func Header(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	bold := color.New(color.Bold)
	_, _ = bold.Println(message)
}

// Highlight prints text in a highlighted color (for emphasis)
func Highlight(text string) string {
	return color.New(color.FgCyan, color.Bold).Sprint(text)
}

// HighlightVersion prints a version string in a highlighted color
func HighlightVersion(version string) string {
	return color.New(color.FgMagenta, color.Bold).Sprint(version)
}

// HighlightTool prints a version manager name in a highlighted color
func HighlightTool(name string) string {
	return color.New(color.FgGreen, color.Bold).Sprint(name)
}
