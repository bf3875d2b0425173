package cmd

import (
	"fmt"

	"github.com/black-desk/fsnotifier/pkg/fsnotifier/config"
	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/lib/go/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchFlags struct {
	Events    []string
	Strict    bool
	QueueSize int
}

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch PATH...",
	Short: "Watch paths given on the command line",
	Long: `Watch the given paths and print one line per event:
the event mask, the full path and, for renames, the cookie.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf("\n\n%w\n"+CheckDocumentString, err)

			return
		}()

		err = watchCmdRun(cmd, args)
		return
	},
}

func watchCmdRun(cmd *cobra.Command, paths []string) (err error) {
	defer Wrap(&err)

	log := logger.Get("fsnotifier")

	var cfg *config.Config
	cfg, err = watchConfig(paths, log)
	if err != nil {
		return
	}

	return runApp(cfg, log, cmd.OutOrStdout())
}

func watchConfig(paths []string, log *zap.SugaredLogger) (ret *config.Config, err error) {
	defer Wrap(&err, "build configuration from arguments")

	mask := types.InAllEvents
	if len(watchFlags.Events) != 0 {
		mask, err = types.ParseMask(watchFlags.Events...)
		if err != nil {
			return
		}
	}

	cfg := &config.Config{
		Version:   "1",
		QueueSize: watchFlags.QueueSize,
		Policy:    types.NamePolicyLenient,
	}
	if watchFlags.Strict {
		cfg.Policy = types.NamePolicyStrict
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = config.DefaultQueueSize
	}

	for i := range paths {
		cfg.Watches = append(cfg.Watches, &config.Watch{
			Path: paths[i],
			Mask: mask,
		})

		log.Debugw("Watch requested.",
			"path", paths[i],
			"mask", mask,
		)
	}

	ret = cfg
	return
}

func init() {
	watchCmd.Flags().StringSliceVarP(
		&watchFlags.Events,
		"events", "e", nil,
		"inotify events to watch, like create,modify (default all)",
	)
	watchCmd.Flags().BoolVar(
		&watchFlags.Strict,
		"strict", false,
		"stop on file names that are not valid UTF-8",
	)
	watchCmd.Flags().IntVar(
		&watchFlags.QueueSize,
		"queue-size", config.DefaultQueueSize,
		"how many events may wait to be printed",
	)

	rootCmd.AddCommand(watchCmd)
}
