package launcher_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"torch-calculator/core/launcher"
	"torch-calculator/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// lockedBuffer is written to by the launcher and the browser goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeAssets(t *testing.T, names ...string) string {
	root := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(name), 0o644))
	}
	return root
}

func freePort(t *testing.T) int {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestLauncher_MissingFiles(t *testing.T) {
	root := writeAssets(t, "index.html")
	out := &lockedBuffer{}
	l := &launcher.Launcher{Root: root, Out: out, Logger: zap.NewNop()}

	err := l.Run(context.Background())
	assert.ErrorIs(t, err, launcher.ErrMissingFiles)
	assert.Equal(t, launcher.StateTerminatedError, l.State())
	assert.Contains(t, out.String(), "styles.css, script.js")
	assert.Contains(t, out.String(), root)
	assert.Zero(t, l.Port())
}

func TestLauncher_NoFreePort(t *testing.T) {
	root := writeAssets(t, launcher.RequiredFiles...)
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	l := &launcher.Launcher{
		Root:   root,
		Server: server.Config{Host: "127.0.0.1", PortStart: taken.Addr().(*net.TCPAddr).Port, PortSpan: 1},
		Out:    io.Discard,
	}

	err = l.Run(context.Background())
	assert.ErrorIs(t, err, server.ErrNoFreePort)
	assert.Equal(t, launcher.StateTerminatedError, l.State())
}

func TestLauncher_SetupFailure(t *testing.T) {
	root := writeAssets(t, launcher.RequiredFiles...)
	boom := errors.New("boom")
	out := &lockedBuffer{}
	l := &launcher.Launcher{
		Root:   root,
		Server: server.Config{Host: "127.0.0.1", PortStart: freePort(t), PortSpan: 50},
		Setup:  func(app *fiber.App) error { return boom },
		Out:    out,
	}

	err := l.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, launcher.StateTerminatedError, l.State())
	assert.Contains(t, out.String(), "当前工作目录")
}

func TestLauncher_RunAndShutdown(t *testing.T) {
	root := writeAssets(t, launcher.RequiredFiles...)
	opened := make(chan string, 1)
	out := &lockedBuffer{}

	l := &launcher.Launcher{
		Root:      root,
		Server:    server.Config{Host: "127.0.0.1", PortStart: freePort(t), PortSpan: 50},
		OpenDelay: 10 * time.Millisecond,
		Open: func(url string) error {
			opened <- url
			return errors.New("no display")
		},
		Setup: func(app *fiber.App) error {
			app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
			return nil
		},
		Out:    out,
		Logger: zap.NewNop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	var url string
	select {
	case url = <-opened:
	case <-time.After(5 * time.Second):
		t.Fatal("browser was never opened")
	}
	assert.Equal(t, l.Server.URL(l.Port()), url)

	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, launcher.StateRunning, l.State())

	// The failed open is reported, never fatal.
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("请手动访问"))
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("launcher did not stop")
	}
	assert.Equal(t, launcher.StateTerminatedClean, l.State())
	assert.Contains(t, out.String(), "程序已退出")
}

func TestLauncher_CancelBeforeOpen(t *testing.T) {
	root := writeAssets(t, launcher.RequiredFiles...)
	var calls int
	var mu sync.Mutex

	l := &launcher.Launcher{
		Root:      root,
		Server:    server.Config{Host: "127.0.0.1", PortStart: freePort(t), PortSpan: 50},
		OpenDelay: time.Hour,
		Open: func(string) error {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil
		},
		Out: io.Discard,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	require.Eventually(t, func() bool { return l.State() == launcher.StateRunning }, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, launcher.StateTerminatedClean, l.State())

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestCheckRequired(t *testing.T) {
	root := writeAssets(t, "index.html", "script.js")
	require.NoError(t, os.Mkdir(filepath.Join(root, "styles.css"), 0o755))

	assert.Equal(t, []string{"styles.css"}, launcher.CheckRequired(root, launcher.RequiredFiles))
	assert.Empty(t, launcher.CheckRequired(root, []string{"index.html"}))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", launcher.StateRunning.String())
	assert.Equal(t, "terminated_clean", launcher.StateTerminatedClean.String())
	assert.Equal(t, "terminated_error", launcher.StateTerminatedError.String())
	assert.Equal(t, "unknown", launcher.State(42).String())
}

func TestState_Terminated(t *testing.T) {
	assert.True(t, launcher.StateTerminatedClean.Terminated())
	assert.True(t, launcher.StateTerminatedError.Terminated())
	assert.False(t, launcher.StateRunning.Terminated())
}
