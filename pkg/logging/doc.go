// Package logging builds the structured loggers used across cagmock.
//
// It is a thin layer over log/slog. The server, the dataset store and the CLI
// all take a *slog.Logger; when none is supplied they fall back to Nop().
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	logger.Info("listening", "addr", ":8080")
//
// Text output is meant for a developer terminal, JSON output for log shippers.
package logging
