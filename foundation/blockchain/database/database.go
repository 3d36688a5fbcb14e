// Package database maintains the append-only sequence of sealed blocks
// along with the block, transaction, and proof of work support.
package database

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/sealchain/foundation/blockchain/hasher"
)

// ErrBlockNotFound is returned when a block number does not exist.
var ErrBlockNotFound = errors.New("block does not exist")

// =============================================================================

// Database manages the blocks that have been sealed into the blockchain.
// Blocks are only ever appended, there is no path to remove one.
type Database struct {
	mu     sync.RWMutex
	hasher hasher.Hasher
	blocks []Block
}

// New constructs an empty database that hashes block headers with the
// specified hasher.
func New(hsh hasher.Hasher) *Database {
	return &Database{
		hasher: hsh,
	}
}

// Write appends a new block to the chain.
func (db *Database) Write(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = append(db.blocks, block)
}

// Count returns the number of blocks in the chain.
func (db *Database) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// LatestBlock returns the latest block. The boolean is false when the
// chain is empty.
func (db *Database) LatestBlock() (Block, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.blocks) == 0 {
		return Block{}, false
	}

	return db.blocks[len(db.blocks)-1], true
}

// LatestHash returns the hash of the latest block header or the zero hash
// when the chain is empty.
func (db *Database) LatestHash() string {
	block, exists := db.LatestBlock()
	if !exists {
		return hasher.ZeroHash
	}

	return block.Hash(db.hasher)
}

// GetBlock returns the block at the specified position where the genesis
// block is number 0.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= uint64(len(db.blocks)) {
		return Block{}, ErrBlockNotFound
	}

	return db.blocks[num], nil
}

// Copy returns a copy of the blocks in chain order.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	copy(blocks, db.blocks)

	return blocks
}

// Validate walks the chain from genesis and validates every block against
// its parent.
func (db *Database) Validate() error {
	blocks := db.Copy()

	var prev *Block
	for i := range blocks {
		if err := blocks[i].ValidateBlock(prev, db.hasher); err != nil {
			return &ValidationError{Number: uint64(i), Err: err}
		}
		prev = &blocks[i]
	}

	return nil
}

// =============================================================================

// ValidationError identifies the block that failed validation.
type ValidationError struct {
	Number uint64
	Err    error
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("block %d: %s", ve.Number, ve.Err)
}

// Unwrap returns the underlying validation failure.
func (ve *ValidationError) Unwrap() error {
	return ve.Err
}
