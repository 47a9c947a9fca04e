package cli

import (
	"os"

	"github.com/spf13/cobra"

	http "github.com/riposte-dev/riposte/http"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Make a GET request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if code := send(cmd, http.MethodGet, args[0], ""); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	sendFlags(getCmd)
}
