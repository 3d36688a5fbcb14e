package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var number int64

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the blocks of the chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		if number >= 0 {
			return call(http.MethodGet, fmt.Sprintf("/v1/blocks/%d", number), nil)
		}
		return call(http.MethodGet, "/v1/blocks/list", nil)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the chain status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(http.MethodGet, "/v1/chain/status", nil)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the whole chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(http.MethodGet, "/v1/chain/validate", nil)
	},
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(validateCmd)
	blocksCmd.Flags().Int64VarP(&number, "number", "n", -1, "Block number to print, all blocks when negative.")
}
