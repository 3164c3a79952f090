package wots

import (
	"github.com/hashsig-labs/winternitz-go/encoding/targetsum"
	"github.com/hashsig-labs/winternitz-go/encoding/winternitz"
	"github.com/hashsig-labs/winternitz-go/internal/prf"
	"github.com/hashsig-labs/winternitz-go/th/message_hash"
	"github.com/hashsig-labs/winternitz-go/th/tweak_hash"
)

// SHA3 instantiations

// NewWinternitzSHA3_128 uses 16-byte parameters and hashes, 16 chunks of
// 8 bits plus 2 checksum chains.
func NewWinternitzSHA3_128() *WinternitzOTS {
	messageHash := message_hash.NewSHA3MessageHash128x3()
	enc := winternitz.NewWinternitzEncoding(messageHash, 8, winternitz.ChecksumLength(16, 8))
	return NewWinternitzOTS(enc, tweak_hash.NewSHA3_128_128())
}

// NewWinternitzSHA3_192 uses 24-byte parameters and hashes, 48 chunks of
// 4 bits plus 3 checksum chains.
func NewWinternitzSHA3_192() *WinternitzOTS {
	messageHash := message_hash.NewSHA3MessageHash192x3()
	enc := winternitz.NewWinternitzEncoding(messageHash, 4, winternitz.ChecksumLength(48, 4))
	return NewWinternitzOTS(enc, tweak_hash.NewSHA3_192_192())
}

// NewWinternitzBlake3_128 mirrors the 128-bit configuration over BLAKE3.
func NewWinternitzBlake3_128() *WinternitzOTS {
	messageHash := message_hash.NewBlake3MessageHash128x3()
	enc := winternitz.NewWinternitzEncoding(messageHash, 8, winternitz.ChecksumLength(16, 8))
	return NewWinternitzOTS(enc, tweak_hash.NewBlake3_128_128())
}

// NewTargetSumSHA3_192 replaces the checksum chains with a target-sum
// check; signing retries the encoding until the sum is hit.
func NewTargetSumSHA3_192() *WinternitzOTS {
	messageHash := message_hash.NewSHA3MessageHash192x3()
	enc := targetsum.NewTargetSumEncoding(messageHash, targetsum.OptimalTarget(48, 4, 1.0))
	return NewWinternitzOTS(enc, tweak_hash.NewSHA3_192_192())
}

// Poseidon instantiations (experimental field-arithmetic backend)

const (
	poseidonParameterLenFE = 4
	poseidonHashLenFE      = 7
	poseidonTweakLenFE     = 3
)

// NewWinternitzPoseidonW2 uses the BabyBear field backend with 128
// chunks of 2 bits plus 5 checksum chains.
func NewWinternitzPoseidonW2() *WinternitzOTS {
	messageHash := message_hash.NewPoseidonMessageHashW2()
	enc := winternitz.NewWinternitzEncoding(messageHash, 2, winternitz.ChecksumLength(128, 2))
	thash := tweak_hash.NewPoseidonTweakHash(poseidonParameterLenFE, poseidonHashLenFE, poseidonTweakLenFE)
	return NewWinternitzOTS(enc, thash)
}

// NewWinternitzPoseidonW4 uses the BabyBear field backend with 64
// chunks of 4 bits plus 3 checksum chains.
func NewWinternitzPoseidonW4() *WinternitzOTS {
	messageHash := message_hash.NewPoseidonMessageHashW4()
	enc := winternitz.NewWinternitzEncoding(messageHash, 4, winternitz.ChecksumLength(64, 4))
	thash := tweak_hash.NewPoseidonTweakHash(poseidonParameterLenFE, poseidonHashLenFE, poseidonTweakLenFE)
	return NewWinternitzOTS(enc, thash)
}

// NewWinternitzPoseidonW1 uses the BabyBear field backend with 163
// chunks of 1 bit plus 8 checksum chains.
func NewWinternitzPoseidonW1() *WinternitzOTS {
	messageHash := message_hash.NewPoseidonMessageHashW1()
	enc := winternitz.NewWinternitzEncoding(messageHash, 1, winternitz.ChecksumLength(163, 1))
	thash := tweak_hash.NewPoseidonTweakHash(5, poseidonHashLenFE, poseidonTweakLenFE)
	return NewWinternitzOTS(enc, thash)
}

// NewPoseidonSeedPRF returns the PRF matching the Poseidon domain
// element size, for seeded key generation.
func NewPoseidonSeedPRF() prf.PRF {
	return prf.NewShakePRFtoField(32, poseidonHashLenFE)
}

// NewSHA3SeedPRF returns a PRF producing byte-backend domain elements of
// the given length, for seeded key generation.
func NewSHA3SeedPRF(outputLen int) prf.PRF {
	return prf.NewSHA3PRF(32, outputLen)
}
