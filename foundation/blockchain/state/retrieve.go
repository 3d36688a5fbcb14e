package state

import (
	"errors"

	"github.com/ardanlabs/sealchain/foundation/blockchain/database"
)

// LastHeaderHash returns the hash of the latest block header or the zero
// hash when the chain is empty.
func (s *State) LastHeaderHash() string {
	return s.db.LatestHash()
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	block, _ := s.db.LatestBlock()
	return block
}

// RetrieveBlocks returns a copy of every sealed block in chain order.
func (s *State) RetrieveBlocks() []database.Block {
	return s.db.Copy()
}

// RetrieveBlock returns the block at the specified number, genesis being 0.
func (s *State) RetrieveBlock(num uint64) (database.Block, error) {
	return s.db.GetBlock(num)
}

// RetrieveHeight returns the number of sealed blocks.
func (s *State) RetrieveHeight() int {
	return s.db.Count()
}

// RetrieveMempool returns a copy of the pending transactions.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// QueryMempoolLength returns the current number of pending transactions.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// RetrieveDifficulty returns the difficulty for the next block.
func (s *State) RetrieveDifficulty() uint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.difficulty
}

// RetrieveReward returns the reward for the next block.
func (s *State) RetrieveReward() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.reward
}

// RetrieveMinerAddress returns the address receiving every block reward.
func (s *State) RetrieveMinerAddress() string {
	return s.minerAddress
}

// ValidateChain checks the linkage, merkle roots, and POW of every block and
// that every reward was paid to the miner.
func (s *State) ValidateChain() error {
	if err := s.db.Validate(); err != nil {
		return err
	}

	for i, block := range s.db.Copy() {
		if block.Trans[0].ReceiverAddress != s.minerAddress {
			return &database.ValidationError{
				Number: uint64(i),
				Err:    errors.New("block reward not paid to the miner"),
			}
		}
	}

	return nil
}

// HashBlock returns the hash of the block header using the chain's hasher.
func (s *State) HashBlock(block database.Block) string {
	return block.Hash(s.hasher)
}

// QueryBlockNumber returns the number of the block with the specified
// header hash, searching from the latest block backwards.
func (s *State) QueryBlockNumber(hash string) (uint64, bool) {
	blocks := s.db.Copy()
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].Hash(s.hasher) == hash {
			return uint64(i), true
		}
	}

	return 0, false
}
