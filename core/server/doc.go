// Package server holds the local HTTP server configuration and the free port scan.
//
// The application never exposes itself beyond the loopback interface. At startup
// the launcher asks FindFreePort for the first bindable port in
// [PortStart, PortStart+PortSpan) and later binds the Fiber app to it.
//
// # Configuration
//
// The Config struct defines the bind host and the probed port range.
//
// # Usage
//
//	port, err := server.FindFreePort(cfg.Host, cfg.PortStart, cfg.PortSpan)
//	if errors.Is(err, server.ErrNoFreePort) {
//	    // fatal
//	}
package server
