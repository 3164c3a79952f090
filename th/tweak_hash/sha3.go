// Package tweak_hash provides concrete tweakable hash backends.
package tweak_hash

import (
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/hashsig-labs/winternitz-go/th"
	"github.com/hashsig-labs/winternitz-go/tweak"
)

const sha3DigestLen = 32

// SHA3TweakableHash implements a tweakable hash by hashing
// parameter || tweak || message with SHA3-256 and truncating.
type SHA3TweakableHash struct {
	parameterLen int
	hashLen      int
}

// NewSHA3TweakableHash creates a SHA3-based tweakable hash. Both lengths
// are in bytes and must be strictly below the native 32-byte digest so
// that truncation is meaningful. Violations are configuration errors and
// rejected here, never at call time.
func NewSHA3TweakableHash(parameterLen, hashLen int) *SHA3TweakableHash {
	if parameterLen <= 0 || parameterLen >= sha3DigestLen {
		panic("sha3 tweakable hash: parameter length must be in 1..31 bytes")
	}
	if hashLen <= 0 || hashLen >= sha3DigestLen {
		panic("sha3 tweakable hash: hash length must be in 1..31 bytes")
	}
	return &SHA3TweakableHash{
		parameterLen: parameterLen,
		hashLen:      hashLen,
	}
}

// Common configurations
func NewSHA3_128_128() *SHA3TweakableHash { return NewSHA3TweakableHash(16, 16) }
func NewSHA3_128_192() *SHA3TweakableHash { return NewSHA3TweakableHash(16, 24) }
func NewSHA3_192_192() *SHA3TweakableHash { return NewSHA3TweakableHash(24, 24) }

// RandParameter generates a random public parameter
func (s *SHA3TweakableHash) RandParameter(rng io.Reader) th.Params {
	return th.RandBytes(rng, s.parameterLen)
}

// RandDomain generates a random domain element
func (s *SHA3TweakableHash) RandDomain(rng io.Reader) th.Domain {
	return th.RandBytes(rng, s.hashLen)
}

// TreeTweak returns a tweak for Merkle tree operations
func (s *SHA3TweakableHash) TreeTweak(level uint8, posInLevel uint32) th.Tweak {
	return tweak.TreeTweak(level, posInLevel)
}

// ChainTweak returns a tweak for hash chain operations
func (s *SHA3TweakableHash) ChainTweak(epoch uint32, chainIndex uint16, posInChain uint16) th.Tweak {
	return tweak.ChainTweak(epoch, chainIndex, posInChain)
}

// Apply computes Truncate(SHA3-256(P || T || M))
func (s *SHA3TweakableHash) Apply(parameter th.Params, tweak th.Tweak, message []th.Domain) th.Domain {
	h := sha3.New256()

	h.Write(parameter)
	h.Write(tweak)
	for _, m := range message {
		h.Write(m)
	}

	return h.Sum(nil)[:s.hashLen]
}

// OutputLen returns the output length in bytes
func (s *SHA3TweakableHash) OutputLen() int {
	return s.hashLen
}

// ParameterLen returns the parameter length in bytes
func (s *SHA3TweakableHash) ParameterLen() int {
	return s.parameterLen
}
