package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/black-desk/fsnotifier/pkg/fsnotifier/config"
	. "github.com/black-desk/lib/go/errwrap"
	"github.com/black-desk/lib/go/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkConfigCmd represents the config command
var checkConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Check configuration",
	Long: `Validate configuration and print the resolved watches.
Watched paths that do not exist yet are reported but do not fail the check.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf("\n%w\n"+CheckDocumentString, err)

			return
		}()

		err = checkConfigCmdRun(cmd.OutOrStdout())
		return
	},
}

func checkConfigCmdRun(out io.Writer) (err error) {
	defer Wrap(&err, "check configuration %s", flags.CfgPath)

	log := zap.NewNop().Sugar()
	if checkFlags.EnableLogger {
		log = logger.Get("fsnotifier")
	}

	var content []byte
	content, err = os.ReadFile(flags.CfgPath)
	if err != nil {
		return
	}

	var cfg *config.Config
	cfg, err = config.New(
		config.WithContent(content),
		config.WithLogger(log),
	)
	if err != nil {
		return
	}

	printConfig(out, cfg)
	return
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintf(out, "name policy: %s\n", cfg.Policy)
	fmt.Fprintf(out, "queue size: %d\n", cfg.QueueSize)
	if cfg.Metrics != nil {
		fmt.Fprintf(out, "metrics: %s\n", cfg.Metrics.Listen)
	}

	fmt.Fprintf(out, "%d watches:\n", len(cfg.Watches))
	for _, w := range cfg.Watches {
		_, statErr := os.Stat(w.Path)
		switch {
		case statErr == nil:
			fmt.Fprintf(out, "  %s\n", w)
		case errors.Is(statErr, os.ErrNotExist):
			fmt.Fprintf(out, "  %s (missing)\n", w)
		default:
			fmt.Fprintf(out, "  %s (%v)\n", w, statErr)
		}
	}
}

func init() {
	checkCmd.AddCommand(checkConfigCmd)
}
