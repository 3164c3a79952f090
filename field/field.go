// Package field implements helpers over the BabyBear prime field using gnark-crypto
package field

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/field/babybear"
)

// P is the BabyBear prime: 2^31 - 2^27 + 1
const P uint64 = 2013265921

// BytesPerElement is the serialized size of one field element
const BytesPerElement = 4

// Element represents a field element in BabyBear
type Element = babybear.Element

// NewElement creates a new field element
func NewElement(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// Modulus returns the field modulus as a big.Int
func Modulus() *big.Int {
	return new(big.Int).SetUint64(P)
}

// RandElement samples a uniform field element by reducing 8 random bytes mod P
func RandElement(rng io.Reader) Element {
	var buf [8]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		panic("failed to read from RNG: " + err.Error())
	}
	var e Element
	e.SetUint64(binary.BigEndian.Uint64(buf[:]) % P)
	return e
}

// RandElements samples n uniform field elements
func RandElements(rng io.Reader, n int) []Element {
	out := make([]Element, n)
	for i := range out {
		out[i] = RandElement(rng)
	}
	return out
}

// BytesToElements parses 4-byte big-endian groups into n field elements
func BytesToElements(data []byte, n int) []Element {
	out := make([]Element, n)
	for i := 0; i < n; i++ {
		offset := i * BytesPerElement
		group := make([]byte, BytesPerElement)
		if offset < len(data) {
			copy(group, data[offset:min(offset+BytesPerElement, len(data))])
		}
		out[i].SetBytes(group)
	}
	return out
}

// ElementsToBytes serializes field elements as 4-byte big-endian groups
func ElementsToBytes(elements []Element) []byte {
	out := make([]byte, 0, len(elements)*BytesPerElement)
	for _, e := range elements {
		b := e.Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// DecomposeBaseP decomposes a non-negative integer into n base-P digits,
// least significant digit first. The input is consumed.
func DecomposeBaseP(acc *big.Int, n int) []Element {
	p := Modulus()
	digit := new(big.Int)
	out := make([]Element, n)
	for i := 0; i < n; i++ {
		acc.DivMod(acc, p, digit)
		out[i].SetBigInt(digit)
	}
	return out
}

// ComposeBaseP folds field elements into one integer, treating them as
// base-P digits with the first element most significant.
func ComposeBaseP(elements []Element) *big.Int {
	p := Modulus()
	acc := new(big.Int)
	digit := new(big.Int)
	for i := range elements {
		acc.Mul(acc, p)
		acc.Add(acc, elements[i].BigInt(digit))
	}
	return acc
}
