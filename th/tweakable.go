package th

import (
	"io"
)

// MessageLength is the fixed length of messages to sign (32 bytes)
const MessageLength = 32

// Tweak separator constants for domain separation.
// Chain, tree, and message hash evaluations can never share an input
// because each starts with its own marker byte.
const (
	TweakSeparatorTreeHash    = 0x00
	TweakSeparatorChainHash   = 0x01
	TweakSeparatorMessageHash = 0x02
)

// Tweak represents a tweak value for domain separation
type Tweak []byte

// Params represents public parameters for the tweakable hash
type Params []byte

// Domain represents a hash output domain element
type Domain []byte

// TweakableHash defines the interface for a tweakable hash function.
// A backend compresses parameter + tweak + one or two domain elements
// into a single domain element; accepting one or two elements lets the
// same primitive serve chain stepping and tree-node combination.
type TweakableHash interface {
	// RandParameter generates a random public parameter
	RandParameter(rng io.Reader) Params

	// RandDomain generates a random domain element
	RandDomain(rng io.Reader) Domain

	// TreeTweak returns a tweak for Merkle tree operations
	TreeTweak(level uint8, posInLevel uint32) Tweak

	// ChainTweak returns a tweak for hash chain operations
	ChainTweak(epoch uint32, chainIndex uint16, posInChain uint16) Tweak

	// Apply computes the tweakable hash: H(P, T, M)
	Apply(parameter Params, tweak Tweak, message []Domain) Domain

	// OutputLen returns the output length in bytes
	OutputLen() int

	// ParameterLen returns the parameter length in bytes
	ParameterLen() int
}

// Chain walks a hash chain for 'steps' positions starting from 'start',
// which sits at position 'startPosInChain'. Step j evaluates the hash
// under the tweak for position startPosInChain+j+1, so every evaluation
// uses a unique (epoch, chainIndex, position) triple.
// Walking zero steps returns the start value unchanged.
//
// This is the only code path that advances a chain: key generation,
// signing, and verification all go through here.
func Chain(th TweakableHash, parameter Params, epoch uint32, chainIndex uint16,
	startPosInChain uint16, steps int, start Domain) Domain {

	current := make(Domain, len(start))
	copy(current, start)

	for j := 0; j < steps; j++ {
		tweak := th.ChainTweak(epoch, chainIndex, startPosInChain+uint16(j)+1)
		current = th.Apply(parameter, tweak, []Domain{current})
	}

	return current
}

// RandBytes reads n uniform bytes from rng, panicking on a short read.
// A broken randomness source is not recoverable at this layer.
func RandBytes(rng io.Reader, n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rng, b); err != nil {
		panic("failed to read from RNG: " + err.Error())
	}
	return b
}
