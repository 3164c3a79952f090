// Package bitutil packs and unpacks small fixed-width chunks.
package bitutil

import "errors"

// ErrChunkSize indicates an unsupported chunk size.
var ErrChunkSize = errors.New("chunk size must be 1, 2, 4, or 8")

// BytesToChunks splits bytes into chunkSize-bit chunks, most significant
// bits of each byte first.
func BytesToChunks(bytes []byte, chunkSize int) ([]uint8, error) {
	if chunkSize != 1 && chunkSize != 2 && chunkSize != 4 && chunkSize != 8 {
		return nil, ErrChunkSize
	}

	chunksPerByte := 8 / chunkSize
	out := make([]uint8, 0, len(bytes)*chunksPerByte)

	switch chunkSize {
	case 8:
		out = append(out, bytes...)
	case 4:
		for _, b := range bytes {
			out = append(out, b>>4)
			out = append(out, b&0x0F)
		}
	case 2:
		for _, b := range bytes {
			out = append(out, b>>6)
			out = append(out, (b>>4)&0x03)
			out = append(out, (b>>2)&0x03)
			out = append(out, b&0x03)
		}
	case 1:
		for _, b := range bytes {
			for i := 7; i >= 0; i-- {
				out = append(out, (b>>uint(i))&0x01)
			}
		}
	}

	return out, nil
}

// ChunksToBytes is the inverse of BytesToChunks. The number of chunks
// must fill whole bytes.
func ChunksToBytes(chunks []uint8, chunkSize int) ([]byte, error) {
	if chunkSize != 1 && chunkSize != 2 && chunkSize != 4 && chunkSize != 8 {
		return nil, ErrChunkSize
	}

	chunksPerByte := 8 / chunkSize
	if len(chunks)%chunksPerByte != 0 {
		return nil, errors.New("chunk count does not fill whole bytes")
	}

	mask := uint8(1<<chunkSize) - 1
	out := make([]byte, len(chunks)/chunksPerByte)
	for i, c := range chunks {
		if c > mask {
			return nil, errors.New("chunk value out of range")
		}
		shift := uint((chunksPerByte - 1 - i%chunksPerByte) * chunkSize)
		out[i/chunksPerByte] |= c << shift
	}

	return out, nil
}

// SplitChecksum splits a checksum value into numChunks chunks of
// chunkSize bits, most significant chunk first. The value must fit.
func SplitChecksum(checksum uint64, chunkSize int, numChunks int) ([]uint8, error) {
	if chunkSize != 1 && chunkSize != 2 && chunkSize != 4 && chunkSize != 8 {
		return nil, ErrChunkSize
	}

	base := uint64(1) << chunkSize
	out := make([]uint8, numChunks)
	for i := numChunks - 1; i >= 0; i-- {
		out[i] = uint8(checksum % base)
		checksum /= base
	}
	if checksum != 0 {
		return nil, errors.New("checksum does not fit into the given chunks")
	}

	return out, nil
}

// TruncateBits truncates data to exactly numBits bits, clearing any
// trailing bits of the last byte.
func TruncateBits(data []byte, numBits int) []byte {
	if numBits <= 0 {
		return []byte{}
	}

	numBytes := (numBits + 7) / 8
	if numBytes > len(data) {
		numBytes = len(data)
	}

	result := make([]byte, numBytes)
	copy(result, data[:numBytes])

	remainingBits := numBits % 8
	if remainingBits > 0 && numBytes > 0 {
		mask := byte(0xFF) << (8 - remainingBits)
		result[numBytes-1] &= mask
	}

	return result
}
