package logging

import "log/slog"

// Standardized structured logging keys shared by commands and stages.
const (
	// FieldComponent tags log lines with the emitting component name.
	FieldComponent = "component"
	// FieldSource tags log lines with a source database name.
	FieldSource = "source"
	// FieldFingerprint tags log lines with a recipe content fingerprint.
	FieldFingerprint = "fingerprint"
	// FieldRecipe tags log lines with a recipe label.
	FieldRecipe = "recipe"
)

// Error wraps an error as a slog attribute under the conventional "error" key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}
