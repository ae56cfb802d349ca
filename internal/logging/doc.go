// Package logging assembles the structured slog loggers used across
// mediamerge commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides a no-op logger for tests and wiring code that cannot
// fail. The console handler colorizes levels only when writing to a terminal.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape and routing.
package logging
