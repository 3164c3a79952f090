package message_hash

import (
	"io"

	"github.com/zeebo/blake3"

	"github.com/hashsig-labs/winternitz-go/internal/bitutil"
	"github.com/hashsig-labs/winternitz-go/th"
	"github.com/hashsig-labs/winternitz-go/tweak"
)

const blake3DigestLen = 32

// Blake3MessageHash is an alternate byte message hash over BLAKE3 with
// the same contract and input layout as the SHA3 backend.
type Blake3MessageHash struct {
	parameterLen  int
	randomnessLen int
	numChunks     int
	chunkSize     int // in bits
}

// NewBlake3MessageHash creates a BLAKE3-based message hash. Same
// configuration invariants as the SHA3 backend, against the 32-byte
// BLAKE3 digest.
func NewBlake3MessageHash(parameterLen, randomnessLen, numChunks, chunkSize int) *Blake3MessageHash {
	if chunkSize != 1 && chunkSize != 2 && chunkSize != 4 && chunkSize != 8 {
		panic("blake3 message hash: chunk size must be 1, 2, 4, or 8")
	}
	if parameterLen <= 0 || parameterLen >= blake3DigestLen {
		panic("blake3 message hash: parameter length must be in 1..31 bytes")
	}
	if randomnessLen <= 0 || randomnessLen >= blake3DigestLen {
		panic("blake3 message hash: randomness length must be in 1..31 bytes")
	}
	if numChunks <= 0 || numChunks*chunkSize >= blake3DigestLen*8 {
		panic("blake3 message hash: chunks exceed the native digest size")
	}
	return &Blake3MessageHash{
		parameterLen:  parameterLen,
		randomnessLen: randomnessLen,
		numChunks:     numChunks,
		chunkSize:     chunkSize,
	}
}

// NewBlake3MessageHash128x3 mirrors the 128-bit SHA3 configuration
func NewBlake3MessageHash128x3() *Blake3MessageHash { return NewBlake3MessageHash(16, 16, 16, 8) }

// RandRandomness generates per-signature randomness
func (b *Blake3MessageHash) RandRandomness(rng io.Reader) []byte {
	return th.RandBytes(rng, b.randomnessLen)
}

// Apply encodes a message into numChunks chunks of chunkSize bits each
func (b *Blake3MessageHash) Apply(parameter th.Params, epoch uint32, randomness []byte, message []byte) []uint8 {
	h := blake3.New()

	h.Write(parameter)
	h.Write(tweak.MessageTweak(epoch))
	h.Write(randomness)
	h.Write(message)

	digest := h.Sum(nil)

	numBytes := (b.numChunks*b.chunkSize + 7) / 8
	chunks, err := bitutil.BytesToChunks(digest[:numBytes], b.chunkSize)
	if err != nil {
		panic("failed to split digest into chunks: " + err.Error())
	}

	return chunks[:b.numChunks]
}

// Hash implements the encoding.MessageHash interface
func (b *Blake3MessageHash) Hash(params th.Params, msg []byte, rand []byte, epoch uint32) []uint8 {
	return b.Apply(params, epoch, rand, msg)
}

// Dimension returns the number of chunks
func (b *Blake3MessageHash) Dimension() int {
	return b.numChunks
}

// Base returns 2^chunkSize
func (b *Blake3MessageHash) Base() int {
	return 1 << b.chunkSize
}

// ChunkSize returns the chunk size in bits
func (b *Blake3MessageHash) ChunkSize() int {
	return b.chunkSize
}

// RandLen returns the randomness length in bytes
func (b *Blake3MessageHash) RandLen() int {
	return b.randomnessLen
}
