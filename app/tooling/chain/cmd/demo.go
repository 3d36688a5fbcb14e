package cmd

import (
	"context"
	"fmt"

	"github.com/ardanlabs/sealchain/foundation/blockchain/hasher"
	"github.com/ardanlabs/sealchain/foundation/blockchain/state"
	"github.com/ardanlabs/sealchain/foundation/logger"
	"github.com/spf13/cobra"
)

var (
	demoMiner      string
	demoDifficulty uint
	demoEncoding   string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an in-process chain, seal two blocks and print them",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.New("CHAIN")
		if err != nil {
			return err
		}
		defer log.Sync()

		enc, err := hasher.ParseEncoding(demoEncoding)
		if err != nil {
			return err
		}

		ev := func(v string, args ...any) {
			log.Infow(fmt.Sprintf(v, args...))
		}

		st := state.New(state.Config{
			MinerAddress: demoMiner,
			Difficulty:   demoDifficulty,
			Hasher:       hasher.Hasher{Encoding: enc},
			EvHandler:    ev,
		})
		defer st.Shutdown()

		st.SubmitTransaction("A", "B", 10)
		st.SubmitTransaction("C", "D", 3)

		if _, err := st.MineNewBlock(context.Background()); err != nil {
			return fmt.Errorf("sealing block: %w", err)
		}

		for i, blk := range st.RetrieveBlocks() {
			fmt.Printf("block[%d] hash %s\n%s\n", i, st.HashBlock(blk), blk)
		}

		if err := st.ValidateChain(); err != nil {
			return fmt.Errorf("validating chain: %w", err)
		}
		fmt.Println("chain is valid")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVarP(&demoMiner, "miner", "m", "miner1", "Miner address credited with rewards.")
	demoCmd.Flags().UintVarP(&demoDifficulty, "difficulty", "d", 3, "Leading zeros required in a block hash.")
	demoCmd.Flags().StringVarP(&demoEncoding, "encoding", "e", "fixed", "Hash hex encoding, fixed or legacy.")
}
