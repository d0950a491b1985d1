package cmd

import (
	"fmt"
	"os"

	"torch-calculator/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands.
// It starts the server, so double-clicking the executable is enough.
var RootCmd = &cobra.Command{
	Use:   "torch-calculator",
	Short: "Torchlight Infinite calculator",
	Long: `Serves the Torchlight Infinite calculator on localhost, stores its settings
beside the executable and opens the default browser.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStart,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives readable ISO8601 timestamps
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
