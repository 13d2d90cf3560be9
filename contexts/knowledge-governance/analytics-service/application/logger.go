package application

import "log/slog"

// ResolveLogger falls back to the process default when no logger is
// injected. Exported for the worker subpackage.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	return ResolveLogger(logger)
}
