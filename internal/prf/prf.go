// Package prf expands a short secret seed into per-chain secret starts,
// so key material can be regenerated deterministically from the seed.
package prf

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/hashsig-labs/winternitz-go/th"
)

// PRF defines the interface for a pseudorandom function
type PRF interface {
	// KeyGen generates a new PRF key
	KeyGen(rng io.Reader) []byte

	// Apply computes PRF(key, epoch, chainIndex) as a domain element
	Apply(key []byte, epoch uint32, chainIndex uint64) th.Domain

	// OutputLen returns the output length in bytes
	OutputLen() int
}

// Fixed domain separator keeping PRF evaluations apart from every
// tweakable hash input.
var prfDomainSep = []byte{
	0x00, 0x01, 0x12, 0xff, 0x00, 0x01, 0xfa, 0xff,
	0x00, 0xaf, 0x12, 0xff, 0x01, 0xfa, 0xff, 0x00,
}

// SHA3PRF implements a PRF using SHA3-256
type SHA3PRF struct {
	keyLen    int
	outputLen int
}

// NewSHA3PRF creates a new SHA3-based PRF
func NewSHA3PRF(keyLen, outputLen int) *SHA3PRF {
	if keyLen <= 0 || outputLen <= 0 || outputLen > 32 {
		panic("sha3 prf: invalid key or output length")
	}
	return &SHA3PRF{
		keyLen:    keyLen,
		outputLen: outputLen,
	}
}

// KeyGen generates a new PRF key
func (p *SHA3PRF) KeyGen(rng io.Reader) []byte {
	return th.RandBytes(rng, p.keyLen)
}

// Apply computes PRF(key, epoch, chainIndex)
func (p *SHA3PRF) Apply(key []byte, epoch uint32, chainIndex uint64) th.Domain {
	h := sha3.New256()

	h.Write(prfDomainSep)
	h.Write(key)

	var epochBytes [4]byte
	binary.BigEndian.PutUint32(epochBytes[:], epoch)
	h.Write(epochBytes[:])

	var chainBytes [8]byte
	binary.BigEndian.PutUint64(chainBytes[:], chainIndex)
	h.Write(chainBytes[:])

	return h.Sum(nil)[:p.outputLen]
}

// OutputLen returns the output length in bytes
func (p *SHA3PRF) OutputLen() int {
	return p.outputLen
}
