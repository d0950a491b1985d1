// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a colourised console
// encoding (the default for the desktop tool) and a JSON encoding, and
// integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so all logs related to a specific request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
