// Package tweak defines the canonical byte encoding of tweaks.
//
// The two tweak kinds (and the message hash tweak) are kept injective
// across all field values: each encoding starts with a distinct one-byte
// marker, followed by fixed-width fields, so a chain evaluation can never
// be replayed as a tree evaluation or vice versa. The variants having
// different lengths is fine: the marker determines where the tweak ends.
package tweak

import (
	"encoding/binary"

	"github.com/hashsig-labs/winternitz-go/th"
)

// ChainTweak encodes the tweak identifying one hash evaluation inside
// one Winternitz chain at one epoch.
// Format: 0x01 || epoch (4 bytes BE) || chainIndex (2 bytes BE) || posInChain (2 bytes BE)
func ChainTweak(epoch uint32, chainIndex uint16, posInChain uint16) th.Tweak {
	tweak := make([]byte, 0, 9)
	tweak = append(tweak, th.TweakSeparatorChainHash)
	tweak = binary.BigEndian.AppendUint32(tweak, epoch)
	tweak = binary.BigEndian.AppendUint16(tweak, chainIndex)
	tweak = binary.BigEndian.AppendUint16(tweak, posInChain)
	return tweak
}

// TreeTweak encodes the tweak identifying one node combination in an
// authentication tree.
// Format: 0x00 || level (1 byte) || posInLevel (4 bytes BE)
func TreeTweak(level uint8, posInLevel uint32) th.Tweak {
	tweak := make([]byte, 0, 6)
	tweak = append(tweak, th.TweakSeparatorTreeHash)
	tweak = append(tweak, level)
	tweak = binary.BigEndian.AppendUint32(tweak, posInLevel)
	return tweak
}

// MessageTweak encodes the tweak mixed into message hashing.
// Format: 0x02 || epoch (4 bytes LE)
func MessageTweak(epoch uint32) th.Tweak {
	tweak := make([]byte, 0, 5)
	tweak = append(tweak, th.TweakSeparatorMessageHash)
	tweak = binary.LittleEndian.AppendUint32(tweak, epoch)
	return tweak
}
