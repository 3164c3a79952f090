package tweak_hash

import (
	"io"

	"github.com/zeebo/blake3"

	"github.com/hashsig-labs/winternitz-go/th"
	"github.com/hashsig-labs/winternitz-go/tweak"
)

const blake3DigestLen = 32

// Blake3TweakableHash is an alternate byte backend over BLAKE3 with the
// same contract as the SHA3 backend.
type Blake3TweakableHash struct {
	parameterLen int
	hashLen      int
}

// NewBlake3TweakableHash creates a BLAKE3-based tweakable hash. Lengths
// are in bytes and must be strictly below the 32-byte digest.
func NewBlake3TweakableHash(parameterLen, hashLen int) *Blake3TweakableHash {
	if parameterLen <= 0 || parameterLen >= blake3DigestLen {
		panic("blake3 tweakable hash: parameter length must be in 1..31 bytes")
	}
	if hashLen <= 0 || hashLen >= blake3DigestLen {
		panic("blake3 tweakable hash: hash length must be in 1..31 bytes")
	}
	return &Blake3TweakableHash{
		parameterLen: parameterLen,
		hashLen:      hashLen,
	}
}

// NewBlake3_128_128 mirrors the 128-bit SHA3 configuration
func NewBlake3_128_128() *Blake3TweakableHash { return NewBlake3TweakableHash(16, 16) }

// RandParameter generates a random public parameter
func (b *Blake3TweakableHash) RandParameter(rng io.Reader) th.Params {
	return th.RandBytes(rng, b.parameterLen)
}

// RandDomain generates a random domain element
func (b *Blake3TweakableHash) RandDomain(rng io.Reader) th.Domain {
	return th.RandBytes(rng, b.hashLen)
}

// TreeTweak returns a tweak for Merkle tree operations
func (b *Blake3TweakableHash) TreeTweak(level uint8, posInLevel uint32) th.Tweak {
	return tweak.TreeTweak(level, posInLevel)
}

// ChainTweak returns a tweak for hash chain operations
func (b *Blake3TweakableHash) ChainTweak(epoch uint32, chainIndex uint16, posInChain uint16) th.Tweak {
	return tweak.ChainTweak(epoch, chainIndex, posInChain)
}

// Apply computes Truncate(BLAKE3(P || T || M))
func (b *Blake3TweakableHash) Apply(parameter th.Params, tweak th.Tweak, message []th.Domain) th.Domain {
	h := blake3.New()

	h.Write(parameter)
	h.Write(tweak)
	for _, m := range message {
		h.Write(m)
	}

	return h.Sum(nil)[:b.hashLen]
}

// OutputLen returns the output length in bytes
func (b *Blake3TweakableHash) OutputLen() int {
	return b.hashLen
}

// ParameterLen returns the parameter length in bytes
func (b *Blake3TweakableHash) ParameterLen() int {
	return b.parameterLen
}
