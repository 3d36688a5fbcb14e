// Package state is the core API for the blockchain and implements all the
// rules for pooling transactions and sealing them into blocks.
package state

import (
	"context"
	"sync"

	"github.com/ardanlabs/sealchain/foundation/blockchain/database"
	"github.com/ardanlabs/sealchain/foundation/blockchain/hasher"
	"github.com/ardanlabs/sealchain/foundation/blockchain/mempool"
)

// DefaultReward is the block reward used when none is configured.
const DefaultReward = 123.12

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of sealing blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the blockchain.
type Config struct {
	MinerAddress string
	Difficulty   uint
	Reward       *float64 // Nil selects DefaultReward.
	Hasher       hasher.Hasher
	EvHandler    EventHandler
}

// State manages the blockchain: the sealed blocks, the pending transactions,
// and the settings used to seal the next block.
type State struct {
	minerAddress string
	hasher       hasher.Hasher
	evHandler    EventHandler

	mu         sync.RWMutex
	difficulty uint
	reward     float64

	// Only one block can be sealed at a time so every block is linked to
	// the block before it.
	sealMu sync.Mutex

	mempool *mempool.Mempool
	db      *database.Database

	Worker Worker
}

// New constructs a new blockchain and seals the genesis block before
// returning. The genesis block only contains the reward transaction.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	reward := DefaultReward
	if cfg.Reward != nil {
		reward = *cfg.Reward
	}

	state := State{
		minerAddress: cfg.MinerAddress,
		hasher:       cfg.Hasher,
		evHandler:    ev,
		difficulty:   cfg.Difficulty,
		reward:       reward,
		mempool:      mempool.New(),
		db:           database.New(cfg.Hasher),
		Worker:       noopWorker{},
	}

	// A background context is never cancelled so this can't fail.
	state.evHandler("state: New: sealing genesis block")
	if _, err := state.MineNewBlock(context.Background()); err != nil {
		panic("state: unable to seal genesis block: " + err.Error())
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start the background sealing.

	return &state
}

// Shutdown cleanly brings the blockchain down.
func (s *State) Shutdown() error {
	s.evHandler("state: Shutdown: started")
	defer s.evHandler("state: Shutdown: completed")

	// Stop all blockchain writing activity.
	s.Worker.Shutdown()

	return nil
}

// =============================================================================

type noopWorker struct{}

func (noopWorker) Shutdown()           {}
func (noopWorker) SignalStartMining()  {}
func (noopWorker) SignalCancelMining() {}
