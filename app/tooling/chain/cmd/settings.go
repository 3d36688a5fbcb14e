package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var difficultyCmd = &cobra.Command{
	Use:   "difficulty [value]",
	Short: "Set the difficulty for future blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseUint(args[0])
		if err != nil {
			return err
		}

		return call(http.MethodPut, "/v1/chain/difficulty", map[string]uint{"difficulty": d})
	},
}

var rewardCmd = &cobra.Command{
	Use:   "reward [value]",
	Short: "Set the reward for future blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseFloat(args[0])
		if err != nil {
			return err
		}

		return call(http.MethodPut, "/v1/chain/reward", map[string]float64{"reward": r})
	},
}

func init() {
	rootCmd.AddCommand(difficultyCmd)
	rootCmd.AddCommand(rewardCmd)
}
