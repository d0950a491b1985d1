package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds configuration for locating the application and starting it.
type Config struct {
	// Root is the directory holding the web assets. Empty means beside the executable.
	Root string `mapstructure:"root" default:""`
	// DataDir is the directory holding the user data file. Empty means beside the executable.
	DataDir string `mapstructure:"data_dir" default:""`
	// OpenBrowser controls whether the system browser is opened after startup.
	OpenBrowser bool `mapstructure:"open_browser" default:"true"`
	// OpenDelayMS is how long to wait for the server before opening the browser.
	OpenDelayMS int `mapstructure:"open_delay_ms" default:"2000"`
}

// DefaultOpenDelay covers server startup latency.
const DefaultOpenDelay = 2 * time.Second

// OpenDelay returns the browser delay as a duration.
func (c Config) OpenDelay() time.Duration {
	if c.OpenDelayMS <= 0 {
		return DefaultOpenDelay
	}
	return time.Duration(c.OpenDelayMS) * time.Millisecond
}

// ResolveRoot returns the absolute application root. Without an explicit root
// the executable's directory is used, unless it lacks the entry document, in
// which case the working directory is used (go run, tests).
func (c Config) ResolveRoot() (string, error) {
	if c.Root != "" {
		return filepath.Abs(c.Root)
	}
	return defaultDir()
}

// ResolveDataDir returns the directory of the user data file, creating it if
// needed. Without an explicit directory it follows the same rule as
// ResolveRoot, so development runs keep their data beside the sources instead
// of in the build cache.
func (c Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		def, err := defaultDir()
		if err != nil {
			return "", err
		}
		dir = def
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// defaultDir is the executable's directory when it holds the entry document,
// otherwise the working directory.
func defaultDir() (string, error) {
	exeDir, err := executableDir()
	if err == nil {
		if _, statErr := os.Stat(filepath.Join(exeDir, EntryDocument)); statErr == nil {
			return exeDir, nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return wd, nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
