// Package encoding defines incomparable encodings of messages into
// codewords of small chunks, the layer between message hashing and the
// chain walks of the signature scheme.
package encoding

import (
	"errors"
	"io"

	"github.com/hashsig-labs/winternitz-go/th"
)

// ErrEncodingFailed indicates encoding failed and needs a retry with
// fresh randomness.
var ErrEncodingFailed = errors.New("encoding failed, retry needed")

// Codeword represents an encoded message as chunks
type Codeword []uint8

// MessageHash defines the interface for message hash functions
type MessageHash interface {
	// Hash encodes (params, epoch, rand, msg) into Dimension() chunks
	Hash(params th.Params, msg []byte, rand []byte, epoch uint32) []uint8

	// RandRandomness generates per-signature randomness
	RandRandomness(rng io.Reader) []byte

	// RandLen returns the randomness length in bytes
	RandLen() int

	// Dimension returns the number of chunks
	Dimension() int

	// Base returns 2^ChunkSize
	Base() int

	// ChunkSize returns the chunk size in bits
	ChunkSize() int
}

// IncomparableEncoding encodes messages so that no codeword of one
// message dominates another chunk-wise, which is what blocks
// chunk-inflation forgeries.
type IncomparableEncoding interface {
	// Encode attempts to encode a message into a codeword.
	// Returns ErrEncodingFailed if encoding fails (needs new randomness).
	Encode(p th.Params, msg []byte, rho []byte, epoch uint32) (Codeword, error)

	// RandRandomness generates randomness for encoding
	RandRandomness(rng io.Reader) []byte

	// Dimension returns the number of chunks in a codeword
	Dimension() int

	// Base returns the base of the encoding (2^ChunkSize)
	Base() int

	// ChunkSize returns the chunk size in bits
	ChunkSize() int

	// MaxTries returns the maximum number of encoding attempts
	MaxTries() int

	// NeedsRetry indicates whether Encode may fail and need retries
	NeedsRetry() bool
}
