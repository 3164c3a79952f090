package message_hash

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"reflect"
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/hashsig-labs/winternitz-go/internal/bitutil"
	"github.com/hashsig-labs/winternitz-go/th"
	"github.com/hashsig-labs/winternitz-go/tweak"
)

func TestSHA3MessageHash(t *testing.T) {
	mh := NewSHA3MessageHash192x3()

	param := make([]byte, 24)
	for i := range param {
		param[i] = byte(i)
	}

	randomness := make([]byte, 24)
	for i := range randomness {
		randomness[i] = byte(255 - i)
	}

	message := make([]byte, th.MessageLength)
	for i := range message {
		message[i] = byte(i * 7)
	}

	chunks := mh.Apply(param, 42, randomness, message)

	if len(chunks) != 48 {
		t.Fatalf("expected 48 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk > 15 {
			t.Fatalf("chunk %d out of range: %d > 15", i, chunk)
		}
	}

	chunks2 := mh.Apply(param, 42, randomness, message)
	if !reflect.DeepEqual(chunks, chunks2) {
		t.Fatal("message hash is not deterministic")
	}
}

func TestSHA3MessageHashChunkSizes(t *testing.T) {
	testCases := []struct {
		chunkSize int
		numChunks int
		maxValue  uint8
	}{
		{1, 248, 1},
		{2, 124, 3},
		{4, 62, 15},
		{8, 31, 255},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("ChunkSize%d", tc.chunkSize), func(t *testing.T) {
			mh := NewSHA3MessageHash(24, 24, tc.numChunks, tc.chunkSize)

			param := make([]byte, 24)
			rand.Read(param)
			randomness := mh.RandRandomness(rand.Reader)
			message := make([]byte, th.MessageLength)
			rand.Read(message)

			chunks := mh.Apply(param, 0, randomness, message)

			if len(chunks) != tc.numChunks {
				t.Fatalf("expected %d chunks, got %d", tc.numChunks, len(chunks))
			}
			for i, chunk := range chunks {
				if chunk > tc.maxValue {
					t.Fatalf("chunk %d exceeds max value: %d > %d", i, chunk, tc.maxValue)
				}
			}
		})
	}
}

// The chunks must reconstruct exactly the leading digest bits: no silent
// truncation or loss within the declared hash length.
func TestSHA3MessageHashChunkCoverage(t *testing.T) {
	mh := NewSHA3MessageHash(16, 16, 16, 8)

	param := make([]byte, 16)
	rand.Read(param)
	randomness := make([]byte, 16)
	rand.Read(randomness)
	message := make([]byte, th.MessageLength)
	rand.Read(message)
	epoch := uint32(7)

	chunks := mh.Apply(param, epoch, randomness, message)

	reconstructed, err := bitutil.ChunksToBytes(chunks, 8)
	if err != nil {
		t.Fatal(err)
	}

	h := sha3.New256()
	h.Write(param)
	h.Write(tweak.MessageTweak(epoch))
	h.Write(randomness)
	h.Write(message)
	digest := h.Sum(nil)

	if !bytes.Equal(reconstructed, digest[:16]) {
		t.Fatal("chunks do not reconstruct the digest prefix")
	}
}

// Different epochs must encode to different chunks (with overwhelming probability)
func TestSHA3MessageHashEpochSensitivity(t *testing.T) {
	mh := NewSHA3MessageHash128x3()

	param := make([]byte, 16)
	rand.Read(param)
	randomness := make([]byte, 16)
	rand.Read(randomness)
	message := make([]byte, th.MessageLength)

	chunks13 := mh.Apply(param, 13, randomness, message)
	chunks14 := mh.Apply(param, 14, randomness, message)

	if reflect.DeepEqual(chunks13, chunks14) {
		t.Fatal("epochs 13 and 14 encoded identically")
	}
}

// Across repeated calls the randomness generator must not degenerate
func TestSHA3MessageHashRandNotAllSame(t *testing.T) {
	mh := NewSHA3MessageHash128x3()

	first := mh.RandRandomness(rand.Reader)
	if len(first) != 16 {
		t.Fatalf("randomness length: got %d, want 16", len(first))
	}

	allSame := true
	for i := 0; i < 10; i++ {
		if !bytes.Equal(first, mh.RandRandomness(rand.Reader)) {
			allSame = false
			break
		}
	}
	if allSame {
		t.Fatal("randomness generator produced identical outputs in all trials")
	}
}

func TestSHA3MessageHashRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		fn   func()
	}{
		{"zero_randomness", func() { NewSHA3MessageHash(16, 0, 16, 8) }},
		{"param_too_long", func() { NewSHA3MessageHash(32, 16, 16, 8) }},
		{"chunks_exceed_digest", func() { NewSHA3MessageHash(16, 16, 32, 8) }},
		{"bad_chunk_size", func() { NewSHA3MessageHash(16, 16, 16, 3) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected a configuration panic")
				}
			}()
			tc.fn()
		})
	}
}

func BenchmarkSHA3MessageHash(b *testing.B) {
	mh := NewSHA3MessageHash192x3()
	param := make([]byte, 24)
	rand.Read(param)
	randomness := mh.RandRandomness(rand.Reader)
	message := make([]byte, th.MessageLength)
	rand.Read(message)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mh.Apply(param, 0, randomness, message)
	}
}
