package cli

import (
	"os"

	"github.com/spf13/cobra"

	http "github.com/riposte-dev/riposte/http"
)

var patchCmd = &cobra.Command{
	Use:   "patch URL",
	Short: "Make a PATCH request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body, _ := cmd.Flags().GetString("body")
		if code := send(cmd, http.MethodPatch, args[0], body); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	sendFlags(patchCmd)
	patchCmd.Flags().StringP("body", "d", "", "Request body")
}
