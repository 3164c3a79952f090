// Package message_hash provides message-to-chunks encodings.
//
// A message hash turns (parameter, epoch, randomness, message) into a
// fixed number of small chunks. Its evaluations are separated from all
// tweakable hash evaluations by the 0x02 marker inside the message tweak.
package message_hash

import (
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/hashsig-labs/winternitz-go/internal/bitutil"
	"github.com/hashsig-labs/winternitz-go/th"
	"github.com/hashsig-labs/winternitz-go/tweak"
)

const sha3DigestLen = 32

// SHA3MessageHash hashes parameter || 0x02 || LE(epoch) || randomness || message
// with SHA3-256 and unpacks the leading digest bits into chunks.
type SHA3MessageHash struct {
	parameterLen  int
	randomnessLen int
	numChunks     int
	chunkSize     int // in bits
}

// NewSHA3MessageHash creates a SHA3-based message hash. Lengths are in
// bytes; chunkSize is in bits. All bounds are configuration invariants
// and violations reject at setup, never at call time:
// parameter and randomness must fit strictly inside the native digest,
// randomness must be non-empty, and the chunks must not ask for more
// bits than the digest carries.
func NewSHA3MessageHash(parameterLen, randomnessLen, numChunks, chunkSize int) *SHA3MessageHash {
	if chunkSize != 1 && chunkSize != 2 && chunkSize != 4 && chunkSize != 8 {
		panic("sha3 message hash: chunk size must be 1, 2, 4, or 8")
	}
	if parameterLen <= 0 || parameterLen >= sha3DigestLen {
		panic("sha3 message hash: parameter length must be in 1..31 bytes")
	}
	if randomnessLen <= 0 || randomnessLen >= sha3DigestLen {
		panic("sha3 message hash: randomness length must be in 1..31 bytes")
	}
	if numChunks <= 0 || numChunks*chunkSize >= sha3DigestLen*8 {
		panic("sha3 message hash: chunks exceed the native digest size")
	}
	return &SHA3MessageHash{
		parameterLen:  parameterLen,
		randomnessLen: randomnessLen,
		numChunks:     numChunks,
		chunkSize:     chunkSize,
	}
}

// Common configurations
func NewSHA3MessageHash128x3() *SHA3MessageHash { return NewSHA3MessageHash(16, 16, 16, 8) }
func NewSHA3MessageHash192x3() *SHA3MessageHash { return NewSHA3MessageHash(24, 24, 48, 4) }

// RandRandomness generates per-signature randomness
func (s *SHA3MessageHash) RandRandomness(rng io.Reader) []byte {
	return th.RandBytes(rng, s.randomnessLen)
}

// Apply encodes a message into numChunks chunks of chunkSize bits each
func (s *SHA3MessageHash) Apply(parameter th.Params, epoch uint32, randomness []byte, message []byte) []uint8 {
	h := sha3.New256()

	h.Write(parameter)
	h.Write(tweak.MessageTweak(epoch))
	h.Write(randomness)
	h.Write(message)

	digest := h.Sum(nil)

	numBytes := (s.numChunks*s.chunkSize + 7) / 8
	chunks, err := bitutil.BytesToChunks(digest[:numBytes], s.chunkSize)
	if err != nil {
		panic("failed to split digest into chunks: " + err.Error())
	}

	return chunks[:s.numChunks]
}

// Hash implements the encoding.MessageHash interface
func (s *SHA3MessageHash) Hash(params th.Params, msg []byte, rand []byte, epoch uint32) []uint8 {
	return s.Apply(params, epoch, rand, msg)
}

// Dimension returns the number of chunks
func (s *SHA3MessageHash) Dimension() int {
	return s.numChunks
}

// Base returns 2^chunkSize
func (s *SHA3MessageHash) Base() int {
	return 1 << s.chunkSize
}

// ChunkSize returns the chunk size in bits
func (s *SHA3MessageHash) ChunkSize() int {
	return s.chunkSize
}

// RandLen returns the randomness length in bytes
func (s *SHA3MessageHash) RandLen() int {
	return s.randomnessLen
}
