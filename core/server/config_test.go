package server_test

import (
	"testing"

	"torch-calculator/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsLoopback(t *testing.T) {
	tests := []struct {
		name string
		host string
		want bool
	}{
		{"Localhost", "localhost", true},
		{"IPv4", "127.0.0.1", true},
		{"IPv6", "::1", true},
		{"AllInterfaces", "0.0.0.0", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Host: tt.host}
			assert.Equal(t, tt.want, c.IsLoopback())
		})
	}
}

func TestConfig_URL(t *testing.T) {
	assert.Equal(t, "http://localhost:5001", server.Config{Host: "localhost"}.URL(5001))
	assert.Equal(t, "http://localhost:5000", server.Config{}.URL(5000))
}
