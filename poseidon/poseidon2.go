// Package poseidon wraps the Poseidon2 permutation over BabyBear from gnark-crypto
package poseidon

import (
	"github.com/consensys/gnark-crypto/field/babybear"
	"github.com/consensys/gnark-crypto/field/babybear/poseidon2"
)

// Element is a BabyBear field element
type Element = babybear.Element

// Poseidon2 wraps the gnark-crypto Poseidon2 permutation
type Poseidon2 struct {
	perm  *poseidon2.Permutation
	width int
}

// NewPoseidon2_16 creates Poseidon2 with width 16
// (external_rounds=8, internal_rounds=13, matching Plonky3's defaults)
func NewPoseidon2_16() *Poseidon2 {
	perm := poseidon2.NewPermutation(16, 8, 13)
	return &Poseidon2{
		perm:  perm,
		width: 16,
	}
}

// NewPoseidon2_24 creates Poseidon2 with width 24
// (external_rounds=8, internal_rounds=21, matching Plonky3's defaults)
func NewPoseidon2_24() *Poseidon2 {
	perm := poseidon2.NewPermutation(24, 8, 21)
	return &Poseidon2{
		perm:  perm,
		width: 24,
	}
}

// Permute applies the Poseidon2 permutation in place
func (p *Poseidon2) Permute(state []Element) {
	if len(state) != p.width {
		panic("state size mismatch")
	}
	if err := p.perm.Permutation(state); err != nil {
		panic("permutation failed: " + err.Error())
	}
}

// Compress hashes input down to outLen elements: the input is zero-padded
// to the permutation width, permuted, and fed forward into the first
// outLen lanes. Input width must be within the fixed capacity and at
// least outLen.
func (p *Poseidon2) Compress(input []Element, outLen int) []Element {
	if len(input) > p.width {
		panic("compress input exceeds permutation width")
	}
	if outLen > len(input) {
		panic("compress output longer than input")
	}

	state := make([]Element, p.width)
	copy(state, input)
	p.Permute(state)

	out := make([]Element, outLen)
	for i := range out {
		out[i].Add(&state[i], &input[i])
	}
	return out
}

// Width returns the permutation width
func (p *Poseidon2) Width() int {
	return p.width
}
