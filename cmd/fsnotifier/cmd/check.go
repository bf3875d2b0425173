package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var checkFlags struct {
	EnableLogger bool
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check system requirements",
	Long:  `Check inotify limits and configuration.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf("\n\n%w\n"+CheckDocumentString, err)

			return
		}()

		err = checkCmdRun(cmd.OutOrStdout())
		return
	},
}

func checkCmdRun(out io.Writer) (err error) {
	err = checkLimitsCmdRun(out)
	if err != nil {
		return
	}

	err = checkConfigCmdRun(out)
	if err != nil {
		return
	}

	return
}

func init() {
	checkCmd.PersistentFlags().BoolVar(
		&checkFlags.EnableLogger,
		"log", false,
		"log while checking",
	)

	rootCmd.AddCommand(checkCmd)
}
