// Package hasher provides the content hashing used by every part of the
// blockchain: transactions, merkle pairs, and block headers.
package hasher

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ZeroHash represents the previous block hash of the genesis block.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Encoding selects how digest bytes are turned into hex text.
type Encoding int

// Set of supported encodings.
const (
	// EncodingFixed writes two hex characters per byte, 64 characters
	// for a SHA-256 digest.
	EncodingFixed Encoding = iota

	// EncodingLegacy writes each byte without zero padding, so a byte
	// below 0x10 becomes a single character and hash length varies.
	EncodingLegacy
)

// ParseEncoding converts the configuration name of an encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fixed":
		return EncodingFixed, nil
	case "legacy":
		return EncodingLegacy, nil
	}

	return EncodingFixed, fmt.Errorf("unknown hash encoding %q", name)
}

// String implements the fmt.Stringer interface.
func (e Encoding) String() string {
	if e == EncodingLegacy {
		return "legacy"
	}
	return "fixed"
}

// =============================================================================

// Hasher produces hex encoded SHA-256 hashes of serializable values.
// The zero value uses the fixed width encoding.
type Hasher struct {
	Encoding Encoding
}

// Hash serializes the value to JSON, keeping the declared field order of
// structs, and returns the SHA-256 digest of that text hex encoded. Strings
// are written as is, without HTML escaping. A value that can't be
// serialized is a programming error and panics.
func (h Hasher) Hash(value any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(value); err != nil {
		panic(fmt.Sprintf("hasher: unable to serialize %T: %s", value, err))
	}

	digest := sha256.Sum256(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))

	if h.Encoding == EncodingLegacy {
		return HexEncode(digest[:])
	}
	return HexEncodeFixed(digest[:])
}

// Hash returns the hash of the value using the fixed width encoding.
func Hash(value any) string {
	return Hasher{}.Hash(value)
}

// HexEncode formats each byte as lowercase hex without zero padding. The
// byte 0x00 produces "0" and 0x0a produces "a".
func HexEncode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)

	for _, v := range b {
		sb.WriteString(strconv.FormatUint(uint64(v), 16))
	}

	return sb.String()
}

// HexEncodeFixed formats each byte as two lowercase hex characters.
func HexEncodeFixed(b []byte) string {
	return common.Bytes2Hex(b)
}
