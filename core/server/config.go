package server

import "fmt"

// Config holds configuration for the local HTTP server.
type Config struct {
	// Host is the loopback host the server binds to.
	Host string `mapstructure:"host" default:"localhost"`
	// PortStart is the first port probed when looking for a free one.
	PortStart int `mapstructure:"port_start" default:"5000"`
	// PortSpan is the number of consecutive ports probed.
	PortSpan int `mapstructure:"port_span" default:"100"`
}

const (
	DefaultHost      = "localhost"
	DefaultPortStart = 5000
	DefaultPortSpan  = 100
)

// IsLoopback reports whether the configured host only exposes the loopback interface.
func (c Config) IsLoopback() bool {
	switch c.Host {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}

// URL returns the base URL of the server on the given port.
func (c Config) URL(port int) string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("http://%s:%d", host, port)
}
