package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/sealchain/foundation/blockchain/hasher"
	"github.com/ardanlabs/sealchain/foundation/blockchain/merkle"
)

// EventHandler defines a function that is called when events
// occur in the processing of sealing blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// BlockHeader represents common information required for each block. The
// field order is the order the header is serialized for hashing.
type BlockHeader struct {
	TimeStamp     int64  `json:"timestamp"`      // Milliseconds since epoch the block was assembled.
	Nonce         uint64 `json:"nonce"`          // Value identified to solve the hash solution.
	PrevBlockHash string `json:"pre_block_hash"` // Hash of the previous block header in the chain.
	MerkleRoot    string `json:"merkle"`         // Merkle root hash of the transactions in this block.
	Difficulty    uint   `json:"difficulty"`     // Number of leading hash characters checked by the POW.
}

// Block represents a group of transactions batched together.
type Block struct {
	Header     BlockHeader `json:"header"`
	TransCount uint        `json:"transaction_count"`
	Trans      []Tx        `json:"transactions"`
}

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	MinerAddress  string
	Reward        float64
	Difficulty    uint
	PrevBlockHash string
	Trans         []Tx
	Hasher        hasher.Hasher
	EvHandler     EventHandler
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the POW puzzle. The reward transaction is placed at index 0 followed
// by the provided transactions in order.
func POW(ctx context.Context, args POWArgs) (Block, error) {
	ev := args.EvHandler
	if ev == nil {
		ev = func(string, ...any) {}
	}

	trans := make([]Tx, 0, len(args.Trans)+1)
	trans = append(trans, NewRewardTx(args.MinerAddress, args.Reward))
	trans = append(trans, args.Trans...)

	nb := Block{
		Header: BlockHeader{
			TimeStamp:     time.Now().UnixMilli(),
			Nonce:         0, // Will be identified by the POW algorithm.
			PrevBlockHash: args.PrevBlockHash,
			Difficulty:    args.Difficulty,
		},
		TransCount: uint(len(trans)),
		Trans:      trans,
	}

	// The merkle root must be part of the header before mining starts since
	// only the nonce is allowed to change during the search.
	root, err := merkle.Root(nb.Trans, merkle.WithHashStrategy(args.Hasher.Hash))
	if err != nil {
		return Block{}, fmt.Errorf("merkle root: %w", err)
	}
	nb.Header.MerkleRoot = root

	ev("database: POW: MINING: started: prevBlk[%s]: txs[%d]", nb.Header.PrevBlockHash, nb.TransCount)
	for _, tx := range nb.Trans {
		ev("database: POW: MINING: tx[%s]", tx)
	}

	if _, err := Solve(ctx, &nb.Header, args.Hasher, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// Solve does the work of mining to find a valid hash for the specified
// header. The nonce is the only field that is changed. The search only
// stops early if the context is cancelled.
func Solve(ctx context.Context, header *BlockHeader, hsh hasher.Hasher, ev EventHandler) (string, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Solve: MINING: attempts[%d]", attempts)
		}

		if err := ctx.Err(); err != nil {
			ev("database: Solve: MINING: CANCELLED: attempts[%d]", attempts)
			return "", err
		}

		hash := hsh.Hash(*header)
		if !IsHashSolved(header.Difficulty, hash) {
			header.Nonce++
			continue
		}

		ev("database: Solve: MINING: SOLVED: hash[%s]: nonce[%d]: attempts[%d]", hash, header.Nonce, attempts)

		return hash, nil
	}
}

// IsHashSolved checks the hash complies with the POW rules. The first
// difficulty characters of the hash must parse as a base 10 number equal to
// zero, which only a run of '0' characters does. An empty prefix never parses
// so a difficulty of zero can never be solved.
func IsHashSolved(difficulty uint, hash string) bool {
	if difficulty > uint(len(hash)) {
		return false
	}

	v, err := strconv.ParseUint(hash[:difficulty], 10, 32)
	if err != nil {
		return false
	}

	return v == 0
}

// CanSolve reports whether some hash could satisfy the difficulty. Zero
// and anything longer than a fixed width hash never can.
func CanSolve(difficulty uint) bool {
	return difficulty > 0 && difficulty <= uint(len(hasher.ZeroHash))
}

// =============================================================================

// Hash returns the unique hash for the block header.
func (b Block) Hash(hsh hasher.Hasher) string {
	return hsh.Hash(b.Header)
}

// ValidateBlock takes a block and validates it can follow the previous block
// in the chain. A nil previous block means this must be the genesis block.
func (b Block) ValidateBlock(previousBlock *Block, hsh hasher.Hasher) error {
	prevHash := hasher.ZeroHash
	if previousBlock != nil {
		prevHash = previousBlock.Hash(hsh)
	}

	if b.Header.PrevBlockHash != prevHash {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.Header.PrevBlockHash, prevHash)
	}

	if b.TransCount != uint(len(b.Trans)) {
		return fmt.Errorf("transaction count doesn't match transactions, got %d, exp %d", b.TransCount, len(b.Trans))
	}

	if len(b.Trans) == 0 || !b.Trans[0].IsReward() {
		return errors.New("first transaction is not a block reward")
	}

	root, err := merkle.Root(b.Trans, merkle.WithHashStrategy(hsh.Hash))
	if err != nil {
		return err
	}

	if b.Header.MerkleRoot != root {
		return fmt.Errorf("merkle root does not match transactions, got %s, exp %s", b.Header.MerkleRoot, root)
	}

	if hash := b.Hash(hsh); !IsHashSolved(b.Header.Difficulty, hash) {
		return fmt.Errorf("%s invalid block hash", hash)
	}

	return nil
}

// String implements the fmt.Stringer interface for logging the fully
// assembled block.
func (b Block) String() string {
	var sb strings.Builder

	sb.WriteString("Block {\n")
	sb.WriteString("    header: BlockHeader {\n")
	fmt.Fprintf(&sb, "        timestamp: %d,\n", b.Header.TimeStamp)
	fmt.Fprintf(&sb, "        nonce: %d,\n", b.Header.Nonce)
	fmt.Fprintf(&sb, "        pre_block_hash: %q,\n", b.Header.PrevBlockHash)
	fmt.Fprintf(&sb, "        merkle: %q,\n", b.Header.MerkleRoot)
	fmt.Fprintf(&sb, "        difficulty: %d,\n", b.Header.Difficulty)
	sb.WriteString("    },\n")
	fmt.Fprintf(&sb, "    transaction_count: %d,\n", b.TransCount)
	sb.WriteString("    transactions: [\n")
	for _, tx := range b.Trans {
		sb.WriteString("        Tx {\n")
		fmt.Fprintf(&sb, "            sender_address: %q,\n", tx.SenderAddress)
		fmt.Fprintf(&sb, "            receiver_address: %q,\n", tx.ReceiverAddress)
		fmt.Fprintf(&sb, "            amount: %v,\n", tx.Amount)
		sb.WriteString("        },\n")
	}
	sb.WriteString("    ],\n")
	sb.WriteString("}")

	return sb.String()
}
