package field

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"
)

func TestRandElementInRange(t *testing.T) {
	p := Modulus()
	for i := 0; i < 1000; i++ {
		e := RandElement(rand.Reader)
		if e.BigInt(new(big.Int)).Cmp(p) >= 0 {
			t.Fatal("sampled element exceeds the modulus")
		}
	}
}

func TestBytesElementsRoundTrip(t *testing.T) {
	elements := RandElements(rand.Reader, 7)

	data := ElementsToBytes(elements)
	if len(data) != 7*BytesPerElement {
		t.Fatalf("serialized length: got %d, want %d", len(data), 7*BytesPerElement)
	}

	back := BytesToElements(data, 7)
	if !bytes.Equal(ElementsToBytes(back), data) {
		t.Fatal("bytes/elements round trip lost data")
	}
}

func TestBytesToElementsPadsShortInput(t *testing.T) {
	elements := BytesToElements([]byte{0x00, 0x00, 0x00, 0x2A}, 3)
	if elements[0].BigInt(new(big.Int)).Uint64() != 42 {
		t.Fatal("first element should parse the 4-byte group")
	}
	for i := 1; i < 3; i++ {
		if !elements[i].IsZero() {
			t.Fatalf("element %d should be zero-padded", i)
		}
	}
}

// DecomposeBaseP emits the least significant digit first; ComposeBaseP
// reads the first element as most significant. Composing the reversed
// decomposition must return the original integer.
func TestDecomposeComposeRoundTrip(t *testing.T) {
	original := new(big.Int).Lsh(big.NewInt(1), 250)
	original.Sub(original, big.NewInt(987654321))

	digits := DecomposeBaseP(new(big.Int).Set(original), 9)

	reversed := make([]Element, len(digits))
	for i := range digits {
		reversed[i] = digits[len(digits)-1-i]
	}

	if ComposeBaseP(reversed).Cmp(original) != 0 {
		t.Fatal("decompose/compose round trip lost the integer")
	}
}

func TestDecomposeBasePConsumesInput(t *testing.T) {
	acc := big.NewInt(12345)
	digits := DecomposeBaseP(acc, 3)

	if digits[0].BigInt(new(big.Int)).Uint64() != 12345 {
		t.Fatal("first digit should hold the full small value")
	}
	if acc.Sign() != 0 {
		t.Fatal("the accumulator should be fully consumed")
	}
}
