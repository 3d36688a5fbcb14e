package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var sealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Seal the pending transactions into a new block",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(http.MethodPost, "/v1/block/seal", nil)
	},
}

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Ask the node worker to seal a block in the background",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(http.MethodPost, "/v1/mining/signal", nil)
	},
}

func init() {
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(signalCmd)
}
