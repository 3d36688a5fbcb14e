// Package merkle reduces an ordered set of values to a single merkle root
// hash for anchoring the transactions of a block.
package merkle

import (
	"errors"

	"github.com/ardanlabs/sealchain/foundation/blockchain/hasher"
)

// ErrEmptyInput is returned when a root is requested for no values.
var ErrEmptyInput = errors.New("cannot construct merkle root with no content")

// =============================================================================

// Option changes the default behavior of the root calculation.
type Option func(cfg *config)

type config struct {
	hashStrategy func(value any) string
}

// WithHashStrategy is used to change the default hash strategy of using
// the fixed width sha256 hasher.
func WithHashStrategy(hashStrategy func(value any) string) Option {
	return func(cfg *config) {
		cfg.hashStrategy = hashStrategy
	}
}

// =============================================================================

// Leaves returns the hash of every value in order. When the number of values
// is odd, the last hash is duplicated so the leaf level is even.
func Leaves[T any](values []T, options ...Option) ([]string, error) {
	cfg := newConfig(options)
	return leaves(values, cfg)
}

// Root calculates the merkle root of the values. Hashes are consumed in pairs
// from the front of a queue and the hash of their concatenated hex text is
// pushed to the back until a single hash survives.
func Root[T any](values []T, options ...Option) (string, error) {
	cfg := newConfig(options)

	queue, err := leaves(values, cfg)
	if err != nil {
		return "", err
	}

	for len(queue) > 1 {
		first, second := queue[0], queue[1]
		queue = append(queue[2:], cfg.hashStrategy(first+second))
	}

	return queue[0], nil
}

// =============================================================================

func newConfig(options []Option) config {
	cfg := config{
		hashStrategy: hasher.Hash,
	}

	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

func leaves[T any](values []T, cfg config) ([]string, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	hashes := make([]string, 0, len(values)+1)
	for _, value := range values {
		hashes = append(hashes, cfg.hashStrategy(value))
	}

	if len(hashes)%2 == 1 {
		hashes = append(hashes, hashes[len(hashes)-1])
	}

	return hashes, nil
}
