package public

import (
	"github.com/ardanlabs/sealchain/foundation/blockchain/database"
	"github.com/ardanlabs/sealchain/foundation/blockchain/state"
)

type newTx struct {
	Sender   string  `json:"sender" validate:"required"`
	Receiver string  `json:"receiver" validate:"required"`
	Amount   float64 `json:"amount"`
}

type difficulty struct {
	Difficulty *uint `json:"difficulty" validate:"required"`
}

type reward struct {
	Reward *float64 `json:"reward" validate:"required"`
}

type submitted struct {
	Status  string `json:"status"`
	Pending int    `json:"pending"`
}

type updated struct {
	Status string `json:"status"`
}

type block struct {
	Number uint64 `json:"number"`
	Hash   string `json:"hash"`
	database.Block
}

type status struct {
	LastHash   string  `json:"last_hash"`
	Height     int     `json:"height"`
	Pending    int     `json:"pending"`
	Difficulty uint    `json:"difficulty"`
	Reward     float64 `json:"reward"`
	Miner      string  `json:"miner"`
}

type validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func toBlock(st *state.State, num uint64, blk database.Block) block {
	return block{
		Number: num,
		Hash:   st.HashBlock(blk),
		Block:  blk,
	}
}
