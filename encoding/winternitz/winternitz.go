// Package winternitz implements the Winternitz incomparable encoding:
// message chunks followed by checksum chunks. Raising any message chunk
// lowers the checksum, so a forger would have to lower a checksum chunk,
// which means walking a checksum chain backward.
package winternitz

import (
	"io"
	"math"

	"github.com/hashsig-labs/winternitz-go/encoding"
	"github.com/hashsig-labs/winternitz-go/internal/bitutil"
	"github.com/hashsig-labs/winternitz-go/th"
)

// WinternitzEncoding appends a checksum to the message hash chunks
type WinternitzEncoding struct {
	messageHash       encoding.MessageHash
	chunkSize         int
	numChunksChecksum int
	numChunksMessage  int
}

// NewWinternitzEncoding creates a Winternitz encoding. numChunksChecksum
// must equal ChecksumLength for the message hash's dimension and chunk
// size; a mismatch is a configuration error.
func NewWinternitzEncoding(messageHash encoding.MessageHash, chunkSize int, numChunksChecksum int) *WinternitzEncoding {
	if chunkSize != 1 && chunkSize != 2 && chunkSize != 4 && chunkSize != 8 {
		panic("winternitz encoding: chunk size must be 1, 2, 4, or 8")
	}
	if messageHash.ChunkSize() != chunkSize {
		panic("winternitz encoding: message hash chunk size mismatch")
	}
	if numChunksChecksum != ChecksumLength(messageHash.Dimension(), chunkSize) {
		panic("winternitz encoding: incorrect number of checksum chunks")
	}

	return &WinternitzEncoding{
		messageHash:       messageHash,
		chunkSize:         chunkSize,
		numChunksChecksum: numChunksChecksum,
		numChunksMessage:  messageHash.Dimension(),
	}
}

// Encode appends the checksum chunks (most significant chunk first) to
// the message hash chunks. Winternitz encoding never fails.
func (w *WinternitzEncoding) Encode(p th.Params, msg []byte, rho []byte, epoch uint32) (encoding.Codeword, error) {
	messageChunks := w.messageHash.Hash(p, msg, rho, epoch)

	// checksum = sum of unused chain steps over the message chunks
	base := uint64(w.Base())
	checksum := uint64(0)
	for _, chunk := range messageChunks {
		checksum += base - 1 - uint64(chunk)
	}

	checksumChunks, err := bitutil.SplitChecksum(checksum, w.chunkSize, w.numChunksChecksum)
	if err != nil {
		return nil, err
	}

	codeword := make(encoding.Codeword, 0, w.Dimension())
	codeword = append(codeword, messageChunks...)
	codeword = append(codeword, checksumChunks...)

	return codeword, nil
}

// RandRandomness generates randomness for encoding
func (w *WinternitzEncoding) RandRandomness(rng io.Reader) []byte {
	return w.messageHash.RandRandomness(rng)
}

// Dimension returns the codeword length: message chunks plus checksum chunks
func (w *WinternitzEncoding) Dimension() int {
	return w.numChunksMessage + w.numChunksChecksum
}

// Base returns 2^chunkSize
func (w *WinternitzEncoding) Base() int {
	return 1 << w.chunkSize
}

// ChunkSize returns the chunk size in bits
func (w *WinternitzEncoding) ChunkSize() int {
	return w.chunkSize
}

// MaxTries returns 1: Winternitz encoding always succeeds
func (w *WinternitzEncoding) MaxTries() int {
	return 1
}

// NeedsRetry returns false: Winternitz encoding always succeeds
func (w *WinternitzEncoding) NeedsRetry() bool {
	return false
}

// ChecksumLength returns the number of chunks needed to represent the
// maximum checksum numChunksMessage*(2^chunkSize - 1).
func ChecksumLength(numChunksMessage int, chunkSize int) int {
	base := 1 << chunkSize
	maxChecksum := numChunksMessage * (base - 1)
	return int(math.Floor(math.Log(float64(maxChecksum))/math.Log(float64(base)))) + 1
}
