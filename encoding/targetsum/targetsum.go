// Package targetsum implements the Target-Sum Winternitz encoding: a
// codeword is valid only if its chunks sum to a fixed target, removing
// the checksum chains at the price of encode retries.
package targetsum

import (
	"fmt"
	"io"

	"github.com/hashsig-labs/winternitz-go/encoding"
	"github.com/hashsig-labs/winternitz-go/th"
)

// TargetSumEncoding accepts only codewords whose chunks sum to targetSum
type TargetSumEncoding struct {
	messageHash encoding.MessageHash
	targetSum   int
}

// NewTargetSumEncoding creates a Target-Sum encoding. targetSum should be
// close to dimension*(base-1)/2 to keep the retry count low.
func NewTargetSumEncoding(messageHash encoding.MessageHash, targetSum int) *TargetSumEncoding {
	maxSum := messageHash.Dimension() * (messageHash.Base() - 1)
	if targetSum < 0 || targetSum > maxSum {
		panic(fmt.Sprintf("target sum %d out of range [0, %d]", targetSum, maxSum))
	}

	return &TargetSumEncoding{
		messageHash: messageHash,
		targetSum:   targetSum,
	}
}

// Encode returns the message hash chunks if they hit the target sum,
// and ErrEncodingFailed otherwise so the caller retries with fresh rho.
func (t *TargetSumEncoding) Encode(p th.Params, msg []byte, rho []byte, epoch uint32) (encoding.Codeword, error) {
	chunks := t.messageHash.Hash(p, msg, rho, epoch)

	sum := 0
	for _, chunk := range chunks {
		sum += int(chunk)
	}

	if sum != t.targetSum {
		return nil, fmt.Errorf("%w: expected sum %d, got %d", encoding.ErrEncodingFailed, t.targetSum, sum)
	}

	return encoding.Codeword(chunks), nil
}

// RandRandomness generates randomness for encoding
func (t *TargetSumEncoding) RandRandomness(rng io.Reader) []byte {
	return t.messageHash.RandRandomness(rng)
}

// Dimension returns the number of chunks in a codeword
func (t *TargetSumEncoding) Dimension() int {
	return t.messageHash.Dimension()
}

// Base returns 2^ChunkSize
func (t *TargetSumEncoding) Base() int {
	return t.messageHash.Base()
}

// ChunkSize returns the chunk size in bits
func (t *TargetSumEncoding) ChunkSize() int {
	return t.messageHash.ChunkSize()
}

// MaxTries returns the maximum number of encoding attempts
func (t *TargetSumEncoding) MaxTries() int {
	return 100000
}

// NeedsRetry returns true: the sum check may fail
func (t *TargetSumEncoding) NeedsRetry() bool {
	return true
}

// OptimalTarget computes a target sum delta*dimension*(base-1)/2;
// delta of 1.0 or 1.1 works well in practice.
func OptimalTarget(dimension int, chunkSize int, delta float64) int {
	maxChunkValue := (1 << chunkSize) - 1
	return int(delta * float64(dimension) * float64(maxChunkValue) / 2.0)
}
