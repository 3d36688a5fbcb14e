package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var (
	sender   string
	receiver string
	amount   float64
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a transaction to the mempool",
	RunE: func(cmd *cobra.Command, args []string) error {
		tx := struct {
			Sender   string  `json:"sender"`
			Receiver string  `json:"receiver"`
			Amount   float64 `json:"amount"`
		}{
			Sender:   sender,
			Receiver: receiver,
			Amount:   amount,
		}

		return call(http.MethodPost, "/v1/tx/submit", tx)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&sender, "from", "f", "", "Sender address.")
	submitCmd.Flags().StringVarP(&receiver, "to", "t", "", "Receiver address.")
	submitCmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to send.")
	submitCmd.MarkFlagRequired("from")
	submitCmd.MarkFlagRequired("to")
}
