package state

import (
	"context"

	"github.com/ardanlabs/sealchain/foundation/blockchain/database"
)

// SealBlock seals every pending transaction into a new block and appends it
// to the chain. The call blocks until the POW puzzle is solved and always
// reports true.
func (s *State) SealBlock() bool {
	_, err := s.MineNewBlock(context.Background())
	return err == nil
}

// MineNewBlock drains the mempool into a new block behind the reward
// transaction, solves the POW puzzle, and appends the block. If the context
// is cancelled before a solution is found, the drained transactions go back
// to the front of the mempool and nothing is appended.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.sealMu.Lock()
	defer s.sealMu.Unlock()

	s.mu.RLock()
	args := database.POWArgs{
		MinerAddress:  s.minerAddress,
		Reward:        s.reward,
		Difficulty:    s.difficulty,
		PrevBlockHash: s.db.LatestHash(),
		Hasher:        s.hasher,
		EvHandler:     database.EventHandler(s.evHandler),
	}
	s.mu.RUnlock()

	args.Trans = s.mempool.PickAll()

	s.evHandler("state: MineNewBlock: MINING: perform POW: txs[%d]: difficulty[%d]", len(args.Trans)+1, args.Difficulty)

	block, err := database.POW(ctx, args)
	if err != nil {
		s.evHandler("state: MineNewBlock: MINING: restore mempool: %s", err)
		s.mempool.Restore(args.Trans)
		return database.Block{}, err
	}

	s.db.Write(block)

	s.evHandler("state: MineNewBlock: MINING: sealed block[%d]:\n%s", s.db.Count()-1, block)
	s.evHandler("state: MineNewBlock: MINING: block hash: %s", block.Hash(s.hasher))

	return block, nil
}
