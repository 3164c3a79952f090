package tweak_hash

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/hashsig-labs/winternitz-go/field"
	"github.com/hashsig-labs/winternitz-go/poseidon"
	"github.com/hashsig-labs/winternitz-go/th"
	"github.com/hashsig-labs/winternitz-go/tweak"
)

// PoseidonTweakHash is the field-arithmetic backend: parameters, tweaks,
// and domain elements are vectors of BabyBear elements, serialized as
// 4-byte groups, and compression is a Poseidon2 sponge of width 24.
// Experimental: validated only by its own consistency checks.
type PoseidonTweakHash struct {
	parameterLen int // in field elements
	hashLen      int // in field elements
	tweakLen     int // in field elements
}

const poseidonWidth = 24

// NewPoseidonTweakHash creates a Poseidon2-based tweakable hash. All
// lengths are in field elements. The parameter and tweak together form
// the sponge capacity and must leave a non-empty rate.
func NewPoseidonTweakHash(parameterLen, hashLen, tweakLen int) *PoseidonTweakHash {
	if parameterLen <= 0 || hashLen <= 0 || tweakLen <= 0 {
		panic("poseidon tweakable hash: lengths must be positive")
	}
	if parameterLen+tweakLen >= poseidonWidth {
		panic("poseidon tweakable hash: parameter and tweak exceed sponge capacity")
	}
	if hashLen > poseidonWidth {
		panic("poseidon tweakable hash: hash length exceeds permutation width")
	}
	// tweakLen field elements must carry the 72-bit packed chain tweak
	bitsPerFE := big.NewInt(0).SetUint64(field.P).BitLen() - 1
	if tweakLen*bitsPerFE < 72 {
		panic("poseidon tweakable hash: tweak length cannot encode a chain tweak")
	}
	return &PoseidonTweakHash{
		parameterLen: parameterLen,
		hashLen:      hashLen,
		tweakLen:     tweakLen,
	}
}

// RandParameter generates a random public parameter
func (p *PoseidonTweakHash) RandParameter(rng io.Reader) th.Params {
	return field.ElementsToBytes(field.RandElements(rng, p.parameterLen))
}

// RandDomain generates a random domain element
func (p *PoseidonTweakHash) RandDomain(rng io.Reader) th.Domain {
	return field.ElementsToBytes(field.RandElements(rng, p.hashLen))
}

// TreeTweak returns the canonical tree tweak encoding
func (p *PoseidonTweakHash) TreeTweak(level uint8, posInLevel uint32) th.Tweak {
	return tweak.TreeTweak(level, posInLevel)
}

// ChainTweak returns the canonical chain tweak encoding
func (p *PoseidonTweakHash) ChainTweak(epoch uint32, chainIndex uint16, posInChain uint16) th.Tweak {
	return tweak.ChainTweak(epoch, chainIndex, posInChain)
}

// Apply absorbs the domain elements into a Poseidon2 sponge whose
// capacity is the parameter and tweak, and squeezes one domain element.
func (p *PoseidonTweakHash) Apply(params th.Params, twk th.Tweak, data []th.Domain) th.Domain {
	paramFE := field.BytesToElements(params, p.parameterLen)
	tweakFE := p.tweakToFieldElements(twk)

	var dataFE []field.Element
	for _, d := range data {
		dataFE = append(dataFE, field.BytesToElements(d, p.hashLen)...)
	}

	capacity := make([]field.Element, 0, p.parameterLen+p.tweakLen)
	capacity = append(capacity, paramFE...)
	capacity = append(capacity, tweakFE...)

	return field.ElementsToBytes(p.sponge(capacity, dataFE))
}

// OutputLen returns the output length in bytes
func (p *PoseidonTweakHash) OutputLen() int {
	return p.hashLen * field.BytesPerElement
}

// ParameterLen returns the parameter length in bytes
func (p *PoseidonTweakHash) ParameterLen() int {
	return p.parameterLen * field.BytesPerElement
}

// HashLenFE returns the output length in field elements
func (p *PoseidonTweakHash) HashLenFE() int {
	return p.hashLen
}

// tweakToFieldElements packs the canonical tweak fields into one integer
// and decomposes it base-p. The marker byte sits in the low bits, so the
// packed values of the two kinds can never coincide.
func (p *PoseidonTweakHash) tweakToFieldElements(twk th.Tweak) []field.Element {
	acc := new(big.Int)
	switch twk[0] {
	case th.TweakSeparatorTreeHash:
		level := uint64(twk[1])
		pos := uint64(binary.BigEndian.Uint32(twk[2:6]))
		acc.SetUint64(level<<40 | pos<<8 | th.TweakSeparatorTreeHash)
	case th.TweakSeparatorChainHash:
		epoch := binary.BigEndian.Uint32(twk[1:5])
		chainIndex := binary.BigEndian.Uint16(twk[5:7])
		posInChain := binary.BigEndian.Uint16(twk[7:9])
		// epoch(32) || chainIndex(16) || posInChain(16) || marker(8): 72 bits
		acc.SetUint64(uint64(epoch))
		acc.Lsh(acc, 40)
		low := uint64(chainIndex)<<24 | uint64(posInChain)<<8 | th.TweakSeparatorChainHash
		acc.Or(acc, new(big.Int).SetUint64(low))
	default:
		panic("unknown tweak separator")
	}
	return field.DecomposeBaseP(acc, p.tweakLen)
}

// sponge absorbs input at the rate lanes with the capacity pinned to the
// upper lanes, then squeezes hashLen elements.
func (p *PoseidonTweakHash) sponge(capacity []field.Element, input []field.Element) []field.Element {
	perm := poseidon.NewPoseidon2_24()
	rate := poseidonWidth - len(capacity)

	state := make([]field.Element, poseidonWidth)
	copy(state[rate:], capacity)

	for i := 0; i < len(input); i += rate {
		end := i + rate
		if end > len(input) {
			end = len(input)
		}
		for j := 0; j < end-i; j++ {
			state[j].Add(&state[j], &input[i+j])
		}
		perm.Permute(state)
	}

	out := make([]field.Element, p.hashLen)
	copy(out, state[:p.hashLen])
	return out
}
