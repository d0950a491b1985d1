package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"torch-calculator/core/config"
	"torch-calculator/core/launcher"
	"torch-calculator/core/loader"
	"torch-calculator/core/logger"
	"torch-calculator/core/middleware/rayid"
	"torch-calculator/core/storage"
	"torch-calculator/feature/static"
	"torch-calculator/feature/userdata"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the calculator server",
	Long:  `Validates the web assets, picks a free port, opens the browser and serves until Ctrl+C.`,
	Args:  cobra.NoArgs,
	RunE:  runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	// 3. Resolve locations
	root, err := cfg.App.ResolveRoot()
	if err != nil {
		return pause(cmd, err)
	}
	dataDir, err := cfg.App.ResolveDataDir()
	if err != nil {
		return pause(cmd, err)
	}
	store := userdata.NewStoreInDir(dataDir)
	logg.Debug("Resolved paths", zap.String("root", root), zap.String("data", store.Path()))

	// 4. Optional backup bucket
	var mirror userdata.Mirror
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Backup storage disabled", zap.Error(err))
		} else {
			mirror = userdata.NewBucketMirror(client, cfg.Storage)
			logg.Info("Mirroring user data", zap.String("bucket", cfg.Storage.Bucket))
		}
	}

	if !cfg.Server.IsLoopback() {
		logg.Warn("Server host is not a loopback address", zap.String("host", cfg.Server.Host))
	}

	// 5. Register Features
	mgr := newManager(store, mirror, root, logg)

	l := &launcher.Launcher{
		Server:    cfg.Server,
		Root:      root,
		OpenDelay: cfg.App.OpenDelay(),
		Out:       cmd.OutOrStdout(),
		Logger:    logg,
		Setup:     setupApp(logg, mgr),
	}
	if cfg.App.OpenBrowser {
		l.Open = browser.OpenURL
	}

	// 6. Serve until interrupted
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := l.Run(ctx); err != nil {
		return pause(cmd, err)
	}
	return nil
}

// setupApp installs the middleware chain and mounts the registered features.
func setupApp(logg *zap.Logger, mgr *loader.Manager) func(app *fiber.App) error {
	return func(app *fiber.App) error {
		app.Use(rayid.New())
		app.Use(requestLogger(logg))
		return mgr.LoadAll(app)
	}
}

// newManager registers the features in route order. The API goes first so it
// is never shadowed by files under the application root.
func newManager(store *userdata.Store, mirror userdata.Mirror, root string, logg *zap.Logger) *loader.Manager {
	mgr := loader.NewManager()
	mgr.Register(userdata.NewFeature(store, mirror, logg))
	mgr.Register(static.NewFeature(root))
	return mgr
}

// requestLogger logs every request with its RayID at debug level.
func requestLogger(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		l := logger.WithRayID(logg, c)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.String("path", c.Path()), zap.Error(err))
		}
		l.Debug("Request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return err
	}
}

// pause keeps the console window open so the user can read the error.
func pause(cmd *cobra.Command, err error) error {
	waitForEnter(cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

func waitForEnter(in io.Reader, out io.Writer) {
	fmt.Fprint(out, "按回车键退出...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}
