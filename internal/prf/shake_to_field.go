package prf

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/hashsig-labs/winternitz-go/field"
	"github.com/hashsig-labs/winternitz-go/th"
)

// ShakePRFtoField is a PRF over SHAKE128 producing field elements, for
// the Poseidon instantiations whose domain elements are element vectors.
type ShakePRFtoField struct {
	keyLen      int
	outputLenFE int
}

// NewShakePRFtoField creates a SHAKE-based PRF outputting outputLenFE
// field elements per evaluation.
func NewShakePRFtoField(keyLen int, outputLenFE int) *ShakePRFtoField {
	if keyLen <= 0 || outputLenFE <= 0 {
		panic("shake prf: invalid key or output length")
	}
	return &ShakePRFtoField{
		keyLen:      keyLen,
		outputLenFE: outputLenFE,
	}
}

var shakePRFDomainSep = []byte{
	0xae, 0xae, 0x22, 0xff, 0x00, 0x01, 0xfa, 0xff,
	0x21, 0xaf, 0x12, 0x00, 0x01, 0x11, 0xff, 0x00,
}

// KeyGen generates a new PRF key
func (p *ShakePRFtoField) KeyGen(rng io.Reader) []byte {
	return th.RandBytes(rng, p.keyLen)
}

// Apply computes PRF(key, epoch, chainIndex) as a serialized vector of
// field elements, each reduced from 8 squeezed bytes.
func (p *ShakePRFtoField) Apply(key []byte, epoch uint32, chainIndex uint64) th.Domain {
	shake := sha3.NewShake128()

	shake.Write(shakePRFDomainSep)
	shake.Write(key)

	var epochBytes [4]byte
	binary.BigEndian.PutUint32(epochBytes[:], epoch)
	shake.Write(epochBytes[:])

	var chainBytes [8]byte
	binary.BigEndian.PutUint64(chainBytes[:], chainIndex)
	shake.Write(chainBytes[:])

	const bytesPerFE = 8
	buf := make([]byte, bytesPerFE*p.outputLenFE)
	shake.Read(buf)

	elements := make([]field.Element, p.outputLenFE)
	for i := range elements {
		val := binary.BigEndian.Uint64(buf[i*bytesPerFE : (i+1)*bytesPerFE])
		elements[i].SetUint64(val % field.P)
	}

	return field.ElementsToBytes(elements)
}

// OutputLen returns the output length in bytes
func (p *ShakePRFtoField) OutputLen() int {
	return p.outputLenFE * field.BytesPerElement
}
