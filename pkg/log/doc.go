// Package log builds [log/slog] handlers from command line level and format
// strings.
//
// Handlers are backed by [github.com/charmbracelet/log], which renders
// human-friendly text on terminals and also supports logfmt and JSON.
package log
