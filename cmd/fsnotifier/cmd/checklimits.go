package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// checkLimitsCmd represents the limits command
var checkLimitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Check inotify limits",
	Long: `Read the inotify limits of the kernel from ` + InotifyProcDir + `.
Fails if any of them can not be read or is not positive.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if err == nil {
				return
			}

			err = fmt.Errorf("\n\n%w\n"+CheckDocumentString, err)

			return
		}()

		err = checkLimitsCmdRun(cmd.OutOrStdout())
		return
	},
}

var inotifyLimits = []string{
	"max_user_watches",
	"max_user_instances",
	"max_queued_events",
}

func checkLimitsCmdRun(out io.Writer) (err error) {
	defer Wrap(&err, "check inotify limits")

	for _, name := range inotifyLimits {
		var value int
		value, err = readLimit(filepath.Join(InotifyProcDir, name))
		if err != nil {
			return
		}

		if value <= 0 {
			err = &ErrLimitInvalid{Name: name, Value: value}
			return
		}

		fmt.Fprintf(out, "%s: %s\n", name, humanize.Comma(int64(value)))
	}

	return
}

func readLimit(path string) (ret int, err error) {
	defer Wrap(&err, "read %s", path)

	var content []byte
	content, err = os.ReadFile(path)
	if err != nil {
		return
	}

	return strconv.Atoi(strings.TrimSpace(string(content)))
}

func init() {
	checkCmd.AddCommand(checkLimitsCmd)
}
