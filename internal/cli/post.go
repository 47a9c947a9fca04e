package cli

import (
	"os"

	"github.com/spf13/cobra"

	http "github.com/riposte-dev/riposte/http"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body, _ := cmd.Flags().GetString("body")
		if code := send(cmd, http.MethodPost, args[0], body); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	sendFlags(postCmd)
	postCmd.Flags().StringP("body", "d", "", "Request body")
}
