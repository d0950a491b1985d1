package server

import (
	"errors"
	"net"
	"strconv"
)

// ErrNoFreePort is returned when every port in the probed range is taken.
var ErrNoFreePort = errors.New("no free port available")

// FindFreePort probes start, start+1, ... start+span-1 on host and returns
// the first port a TCP listener could bind. The listener is released
// immediately, so the port may be claimed by another process before the
// caller binds it.
func FindFreePort(host string, start, span int) (int, error) {
	if span <= 0 {
		span = DefaultPortSpan
	}
	for port := start; port < start+span; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return port, nil
	}
	return 0, ErrNoFreePort
}
