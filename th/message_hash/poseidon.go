package message_hash

import (
	"io"
	"math"
	"math/big"

	"github.com/hashsig-labs/winternitz-go/field"
	"github.com/hashsig-labs/winternitz-go/poseidon"
	"github.com/hashsig-labs/winternitz-go/th"
)

// PoseidonMessageHash is the field-arithmetic message hash: the message
// and epoch are decomposed base-p into BabyBear elements, compressed
// together with randomness and parameter through Poseidon2, and the
// result is re-read as one integer and decomposed base-2^chunkSize.
// Experimental: validated only by its own consistency checks.
type PoseidonMessageHash struct {
	parameterLen int // in field elements
	randLen      int // in field elements
	hashLenFE    int // compression output, in field elements
	numChunks    int
	chunkSize    int // in bits
	tweakLenFE   int // epoch encoding, in field elements
	msgLenFE     int // message encoding, in field elements
}

// NewPoseidonMessageHash creates a Poseidon2-based message hash. All
// *LenFE arguments are in field elements; chunkSize is in bits.
// Consistency checks, all at setup time:
//   - msgLenFE elements must carry at least 8*MessageLength bits,
//   - tweakLenFE elements must carry at least 40 bits (epoch + marker),
//   - the chunks must losslessly represent hashLenFE elements,
//   - the combined compression input must fit the fixed 24-slot width.
func NewPoseidonMessageHash(parameterLen, randLen, hashLenFE, numChunks, chunkSize, tweakLenFE, msgLenFE int) *PoseidonMessageHash {
	if chunkSize != 1 && chunkSize != 2 && chunkSize != 4 && chunkSize != 8 {
		panic("poseidon message hash: chunk size must be 1, 2, 4, or 8")
	}
	if randLen <= 0 {
		panic("poseidon message hash: randomness length must be non-zero")
	}

	bitsPerFE := math.Log2(float64(field.P))
	if bitsPerFE*float64(msgLenFE) < float64(8*th.MessageLength) {
		panic("poseidon message hash: not enough field elements to encode the message")
	}
	if bitsPerFE*float64(tweakLenFE) < 40 {
		panic("poseidon message hash: not enough field elements to encode the epoch tweak")
	}
	if bitsPerFE*float64(hashLenFE) > float64(numChunks*chunkSize) {
		panic("poseidon message hash: not enough chunks to decode the hash")
	}
	if parameterLen+randLen+tweakLenFE+msgLenFE > poseidonWidth {
		panic("poseidon message hash: combined input exceeds the compression width")
	}
	if hashLenFE > randLen+parameterLen+tweakLenFE+msgLenFE {
		panic("poseidon message hash: hash length exceeds the compression input")
	}

	return &PoseidonMessageHash{
		parameterLen: parameterLen,
		randLen:      randLen,
		hashLenFE:    hashLenFE,
		numChunks:    numChunks,
		chunkSize:    chunkSize,
		tweakLenFE:   tweakLenFE,
		msgLenFE:     msgLenFE,
	}
}

const poseidonWidth = 24

// Common configurations
func NewPoseidonMessageHashW1() *PoseidonMessageHash {
	return NewPoseidonMessageHash(5, 5, 5, 163, 1, 2, 9)
}
func NewPoseidonMessageHashW2() *PoseidonMessageHash {
	return NewPoseidonMessageHash(4, 4, 5, 128, 2, 2, 9)
}
func NewPoseidonMessageHashW4() *PoseidonMessageHash {
	return NewPoseidonMessageHash(4, 4, 5, 64, 4, 2, 9)
}

// RandRandomness samples randLen uniform field elements
func (h *PoseidonMessageHash) RandRandomness(rng io.Reader) []byte {
	return field.ElementsToBytes(field.RandElements(rng, h.randLen))
}

// Apply encodes a message into numChunks chunks of chunkSize bits each
func (h *PoseidonMessageHash) Apply(parameter th.Params, epoch uint32, randomness []byte, message []byte) []uint8 {
	paramFE := field.BytesToElements(parameter, h.parameterLen)
	randFE := field.BytesToElements(randomness, h.randLen)
	epochFE := encodeEpoch(epoch, h.tweakLenFE)
	msgFE := encodeMessage(message, h.msgLenFE)

	input := make([]field.Element, 0, h.randLen+h.parameterLen+h.tweakLenFE+h.msgLenFE)
	input = append(input, randFE...)
	input = append(input, paramFE...)
	input = append(input, epochFE...)
	input = append(input, msgFE...)

	perm := poseidon.NewPoseidon2_24()
	hashFE := perm.Compress(input, h.hashLenFE)

	return decodeToChunks(hashFE, h.numChunks, h.chunkSize)
}

// Hash implements the encoding.MessageHash interface
func (h *PoseidonMessageHash) Hash(params th.Params, msg []byte, rand []byte, epoch uint32) []uint8 {
	return h.Apply(params, epoch, rand, msg)
}

// Dimension returns the number of chunks
func (h *PoseidonMessageHash) Dimension() int {
	return h.numChunks
}

// Base returns 2^chunkSize
func (h *PoseidonMessageHash) Base() int {
	return 1 << h.chunkSize
}

// ChunkSize returns the chunk size in bits
func (h *PoseidonMessageHash) ChunkSize() int {
	return h.chunkSize
}

// RandLen returns the randomness length in bytes
func (h *PoseidonMessageHash) RandLen() int {
	return h.randLen * field.BytesPerElement
}

// encodeMessage interprets the message as a little-endian integer and
// decomposes it base-p into msgLenFE elements.
func encodeMessage(message []byte, msgLenFE int) []field.Element {
	le := make([]byte, len(message))
	for i := range message {
		le[i] = message[len(message)-1-i]
	}
	acc := new(big.Int).SetBytes(le)
	return field.DecomposeBaseP(acc, msgLenFE)
}

// encodeEpoch packs (epoch << 8) | marker and decomposes it base-p into
// tweakLenFE elements.
func encodeEpoch(epoch uint32, tweakLenFE int) []field.Element {
	acc := new(big.Int).SetUint64(uint64(epoch)<<8 | th.TweakSeparatorMessageHash)
	return field.DecomposeBaseP(acc, tweakLenFE)
}

// decodeToChunks reads the field elements as big-endian base-p digits of
// one integer and decomposes that integer base-2^chunkSize.
func decodeToChunks(elements []field.Element, numChunks, chunkSize int) []uint8 {
	acc := field.ComposeBaseP(elements)

	base := big.NewInt(1 << chunkSize)
	digit := new(big.Int)
	chunks := make([]uint8, numChunks)
	for i := 0; i < numChunks; i++ {
		acc.DivMod(acc, base, digit)
		chunks[i] = uint8(digit.Uint64())
	}
	return chunks
}
