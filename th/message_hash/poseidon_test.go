package message_hash

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"reflect"
	"testing"

	"github.com/hashsig-labs/winternitz-go/field"
	"github.com/hashsig-labs/winternitz-go/th"
)

func TestPoseidonMessageHashConfigurations(t *testing.T) {
	configs := []struct {
		name     string
		mh       *PoseidonMessageHash
		maxValue uint8
	}{
		{"W1", NewPoseidonMessageHashW1(), 1},
		{"W2", NewPoseidonMessageHashW2(), 3},
		{"W4", NewPoseidonMessageHashW4(), 15},
	}

	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			param := make([]byte, cfg.mh.parameterLen*field.BytesPerElement)
			rand.Read(param)
			randomness := cfg.mh.RandRandomness(rand.Reader)
			message := make([]byte, th.MessageLength)
			rand.Read(message)

			chunks := cfg.mh.Apply(param, 9, randomness, message)

			if len(chunks) != cfg.mh.Dimension() {
				t.Fatalf("expected %d chunks, got %d", cfg.mh.Dimension(), len(chunks))
			}
			for i, chunk := range chunks {
				if chunk > cfg.maxValue {
					t.Fatalf("chunk %d out of range: %d > %d", i, chunk, cfg.maxValue)
				}
			}

			chunks2 := cfg.mh.Apply(param, 9, randomness, message)
			if !reflect.DeepEqual(chunks, chunks2) {
				t.Fatal("poseidon message hash is not deterministic")
			}
		})
	}
}

func TestPoseidonMessageHashEpochSensitivity(t *testing.T) {
	mh := NewPoseidonMessageHashW2()

	param := make([]byte, mh.parameterLen*field.BytesPerElement)
	rand.Read(param)
	randomness := mh.RandRandomness(rand.Reader)
	message := make([]byte, th.MessageLength)

	chunks13 := mh.Apply(param, 13, randomness, message)
	chunks14 := mh.Apply(param, 14, randomness, message)

	if reflect.DeepEqual(chunks13, chunks14) {
		t.Fatal("epochs 13 and 14 encoded identically")
	}
}

func TestPoseidonMessageHashRandNotAllSame(t *testing.T) {
	mh := NewPoseidonMessageHashW2()

	first := mh.RandRandomness(rand.Reader)
	if len(first) != mh.RandLen() {
		t.Fatalf("randomness length: got %d, want %d", len(first), mh.RandLen())
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

func TestEncodeMessageZero(t *testing.T) {
	elements := encodeMessage(make([]byte, th.MessageLength), 9)
	if len(elements) != 9 {
		t.Fatalf("expected 9 elements, got %d", len(elements))
	}
	for i, e := range elements {
		if !e.IsZero() {
			t.Fatalf("element %d of the zero message is non-zero", i)
		}
	}
}

// The message is read as a little-endian integer, so its first byte is
// the least significant base-p digit's low byte.
func TestEncodeMessageLittleEndian(t *testing.T) {
	message := make([]byte, th.MessageLength)
	for i := range message {
		message[i] = 0xFF
	}

	elements := encodeMessage(message, 9)

	expected := new(big.Int).Lsh(big.NewInt(1), 256)
	expected.Sub(expected, big.NewInt(1))
	p := field.Modulus()
	digit := new(big.Int)
	for i, e := range elements {
		expected.DivMod(expected, p, digit)
		if e.BigInt(new(big.Int)).Cmp(digit) != 0 {
			t.Fatalf("element %d: got %v, expected %v", i, e.BigInt(new(big.Int)), digit)
		}
	}
	if expected.Sign() != 0 {
		t.Fatal("message integer did not fit nine digits")
	}

	// a single low byte lands entirely in the first digit
	single := make([]byte, th.MessageLength)
	single[0] = 0x2A
	elements = encodeMessage(single, 9)
	if first := elements[0].BigInt(new(big.Int)); first.Uint64() != 0x2A {
		t.Fatalf("first digit: got %v, expected 42", first)
	}
	for i := 1; i < len(elements); i++ {
		if !elements[i].IsZero() {
			t.Fatalf("digit %d should be zero", i)
		}
	}
}

func TestEncodeEpoch(t *testing.T) {
	elements := encodeEpoch(0, 2)
	if first := elements[0].BigInt(new(big.Int)); first.Uint64() != uint64(th.TweakSeparatorMessageHash) {
		t.Fatalf("epoch zero should encode to the bare separator, got %v", first)
	}
	if !elements[1].IsZero() {
		t.Fatal("epoch zero should not reach the second digit")
	}

	// (epoch << 8) | separator must round-trip through the base-p digits
	epoch := uint32(0xDEADBEEF)
	elements = encodeEpoch(epoch, 2)
	p := field.Modulus()
	acc := new(big.Int)
	acc.Mul(elements[1].BigInt(new(big.Int)), p)
	acc.Add(acc, elements[0].BigInt(new(big.Int)))
	expected := new(big.Int).SetUint64(uint64(epoch)<<8 | uint64(th.TweakSeparatorMessageHash))
	if acc.Cmp(expected) != 0 {
		t.Fatalf("epoch encoding: got %v, expected %v", acc, expected)
	}
}

func TestPoseidonMessageHashRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		fn   func()
	}{
		{"message_too_short", func() { NewPoseidonMessageHash(4, 4, 5, 128, 2, 2, 8) }},
		{"tweak_too_short", func() { NewPoseidonMessageHash(4, 4, 5, 128, 2, 1, 9) }},
		{"too_few_chunks", func() { NewPoseidonMessageHash(4, 4, 5, 64, 2, 2, 9) }},
		{"input_too_wide", func() { NewPoseidonMessageHash(8, 8, 5, 128, 2, 2, 9) }},
		{"bad_chunk_size", func() { NewPoseidonMessageHash(4, 4, 5, 128, 3, 2, 9) }},
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

func BenchmarkPoseidonMessageHash(b *testing.B) {
	for _, cfg := range []struct {
		name string
		mh   *PoseidonMessageHash
	}{
		{"W1", NewPoseidonMessageHashW1()},
		{"W2", NewPoseidonMessageHashW2()},
	} {
		b.Run(cfg.name, func(b *testing.B) {
			param := make([]byte, cfg.mh.parameterLen*field.BytesPerElement)
			rand.Read(param)
			randomness := cfg.mh.RandRandomness(rand.Reader)
			message := make([]byte, th.MessageLength)
			rand.Read(message)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				cfg.mh.Apply(param, 0, randomness, message)
			}
		})
	}
}
