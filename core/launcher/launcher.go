package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"torch-calculator/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrMissingFiles is returned when required assets are absent from the application root.
var ErrMissingFiles = errors.New("missing required files")

// State is a step of the startup sequence.
type State int

const (
	StateInit State = iota
	StateValidatingFiles
	StateFindingPort
	StateStarting
	StateRunning
	// StateTerminatedClean follows an interrupt after the server was running.
	StateTerminatedClean
	// StateTerminatedError follows any fatal startup or serve failure.
	StateTerminatedError
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateValidatingFiles:
		return "validating_files"
	case StateFindingPort:
		return "finding_port"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateTerminatedClean:
		return "terminated_clean"
	case StateTerminatedError:
		return "terminated_error"
	default:
		return "unknown"
	}
}

// Terminated reports whether s is a final state.
func (s State) Terminated() bool {
	return s == StateTerminatedClean || s == StateTerminatedError
}

// Opener opens url in the user's browser.
type Opener func(url string) error

// Launcher validates the application, picks a port, schedules the browser
// and serves until its context is cancelled.
type Launcher struct {
	// Server is the bind host and probed port range.
	Server server.Config
	// Root is the resolved application root.
	Root string
	// Required lists files that must exist under Root. Defaults to RequiredFiles.
	Required []string
	// OpenDelay is waited before Open is called.
	OpenDelay time.Duration
	// Open is called once with the server URL. Nil disables it.
	Open Opener
	// Setup mounts middleware and features on the app.
	Setup func(app *fiber.App) error
	// Out receives the user-facing console messages.
	Out io.Writer
	// Logger receives structured logs.
	Logger *zap.Logger

	mu    sync.Mutex
	state State
	port  int

	outMu sync.Mutex
}

// State returns the current startup state.
func (l *Launcher) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Port returns the chosen port, or 0 before FindingPort succeeded.
func (l *Launcher) Port() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port
}

func (l *Launcher) enter(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
	l.logger().Debug("Launcher state changed", zap.Stringer("state", s))
}

func (l *Launcher) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func (l *Launcher) printf(format string, args ...any) {
	l.outMu.Lock()
	defer l.outMu.Unlock()
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format+"\n", args...)
}

// Run executes the startup sequence and blocks while the server is running.
// A cancelled context is a clean shutdown and returns nil.
func (l *Launcher) Run(ctx context.Context) error {
	l.enter(StateInit)
	rule := strings.Repeat("=", 50)
	l.printf("%s", rule)
	l.printf("火炬之光无限 - 计算辅助工具")
	l.printf("%s", rule)

	l.enter(StateValidatingFiles)
	required := l.Required
	if required == nil {
		required = RequiredFiles
	}
	if missing := CheckRequired(l.Root, required); len(missing) > 0 {
		l.enter(StateTerminatedError)
		l.printf("错误: 缺少必要文件: %s", strings.Join(missing, ", "))
		l.printf("应用程序路径: %s", l.Root)
		l.logger().Error("Required files missing", zap.Strings("missing", missing), zap.String("root", l.Root))
		return fmt.Errorf("%w: %s", ErrMissingFiles, strings.Join(missing, ", "))
	}

	l.enter(StateFindingPort)
	host := l.Server.Host
	if host == "" {
		host = server.DefaultHost
	}
	start := l.Server.PortStart
	if start <= 0 {
		start = server.DefaultPortStart
	}
	port, err := server.FindFreePort(host, start, l.Server.PortSpan)
	if err != nil {
		l.enter(StateTerminatedError)
		l.printf("错误: 无法找到可用端口")
		l.logger().Error("Port scan failed", zap.Int("start", start), zap.Error(err))
		return err
	}
	l.mu.Lock()
	l.port = port
	l.mu.Unlock()
	url := l.Server.URL(port)

	l.enter(StateStarting)
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		UnescapePath:          true,
	})
	if l.Setup != nil {
		if err := l.Setup(app); err != nil {
			return l.fail(fmt.Errorf("failed to set up routes: %w", err))
		}
	}

	l.printf("正在启动服务器...")
	l.printf("服务器地址: %s", url)
	l.printf("按 Ctrl+C 退出程序")
	l.printf("%s", rule)

	l.enter(StateRunning)
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return l.fail(fmt.Errorf("failed to bind %s: %w", url, err))
	}
	if l.Open != nil {
		go l.openLater(ctx, url)
	}

	serveErr := make(chan error, 1)
	go func() {
		l.logger().Info("Starting server", zap.String("url", url))
		serveErr <- app.Listener(ln)
	}()

	select {
	case <-ctx.Done():
		l.logger().Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			l.logger().Warn("Server shutdown incomplete", zap.Error(err))
		}
		_ = ln.Close()
		l.enter(StateTerminatedClean)
		l.printf("\n程序已退出")
		return nil
	case err := <-serveErr:
		if err == nil {
			l.enter(StateTerminatedClean)
			return nil
		}
		return l.fail(err)
	}
}

// fail prints startup diagnostics and terminates with err.
func (l *Launcher) fail(err error) error {
	l.enter(StateTerminatedError)
	wd, _ := os.Getwd()
	l.printf("启动失败: %v", err)
	l.printf("应用程序路径: %s", l.Root)
	l.printf("当前工作目录: %s", wd)
	l.logger().Error("Server failed to start", zap.Error(err), zap.String("root", l.Root), zap.String("cwd", wd))
	return err
}

// openLater waits for the server to come up and opens the browser once.
// Failures are reported to the user and never propagated.
func (l *Launcher) openLater(ctx context.Context, url string) {
	delay := l.OpenDelay
	if delay <= 0 {
		delay = DefaultOpenDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	if err := l.Open(url); err != nil {
		l.logger().Warn("Failed to open browser", zap.String("url", url), zap.Error(err))
		l.printf("无法自动打开浏览器: %v", err)
		l.printf("请手动访问: %s", url)
	}
}
