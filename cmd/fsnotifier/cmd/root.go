package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/black-desk/fsnotifier/pkg/fsnotifier/config"
	"github.com/black-desk/lib/go/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flags struct {
	CfgPath string
}

var rootCmd = &cobra.Command{
	Use:   "fsnotifier",
	Short: "Watch filesystem changes with inotify",
	Long: `Watch the paths listed in the configuration
and log every inotify event reported for them.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf(
				"\n\n%w\n"+CheckDocumentString,
				err,
			)

			return
		}()
		err = rootCmdRun()
		return
	},
}

func loadConfig(log *zap.SugaredLogger) (ret *config.Config, err error) {
	content, err := os.ReadFile(flags.CfgPath)
	if errors.Is(err, os.ErrNotExist) && flags.CfgPath == FsnotifierCfgPath {
		log.Errorw("Configuration file missing fallback to default config.")

		content = []byte(config.DefaultConfig)
		err = nil
	} else if err != nil {
		log.Errorw("Failed to read configuration from file",
			"file", flags.CfgPath,
			"error", err)

		return
	}

	return config.New(
		config.WithContent(content),
		config.WithLogger(log),
	)
}

func rootCmdRun() (err error) {
	log := logger.Get("fsnotifier")

	var cfg *config.Config
	cfg, err = loadConfig(log)
	if err != nil {
		return
	}

	return runApp(cfg, log, nil)
}

// signalContext is canceled with *ErrCancelBySignal
// when SIGINT or SIGTERM arrives.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigCh:
			cancel(&ErrCancelBySignal{Signal: sig})
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, func() { cancel(nil) }
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cfgPath := os.Getenv("CONFIGURATION_DIRECTORY")
	if cfgPath == "" {
		cfgPath = FsnotifierCfgPath
	} else {
		cfgPath += "/config.yaml"
	}

	rootCmd.PersistentFlags().StringVarP(
		&flags.CfgPath,
		"config", "c", cfgPath,
		"the configure file to use",
	)
}
