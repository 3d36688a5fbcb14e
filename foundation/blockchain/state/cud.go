package state

import "github.com/ardanlabs/sealchain/foundation/blockchain/database"

// The mutators below always report true. The boolean is kept so validation
// can be added later without changing the callers.

// SubmitTransaction adds a new transaction to the end of the mempool. No
// validation is performed on the addresses or the amount.
func (s *State) SubmitTransaction(sender string, receiver string, amount float64) bool {
	tx := database.NewTx(sender, receiver, amount)

	n := s.mempool.Add(tx)
	s.evHandler("state: SubmitTransaction: tx[%s]: pending[%d]", tx, n)

	return true
}

// SetDifficulty replaces the difficulty used to seal the next block. Blocks
// already sealed keep the difficulty recorded in their header.
func (s *State) SetDifficulty(difficulty uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.difficulty = difficulty
	s.evHandler("state: SetDifficulty: difficulty[%d]", difficulty)

	return true
}

// SetReward replaces the reward paid to the miner for the next block.
func (s *State) SetReward(reward float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reward = reward
	s.evHandler("state: SetReward: reward[%v]", reward)

	return true
}
