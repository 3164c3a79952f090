// Package wots implements the Winternitz one-time signature scheme on
// top of a tweakable hash and an incomparable encoding.
package wots

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/hashsig-labs/winternitz-go/encoding"
	"github.com/hashsig-labs/winternitz-go/internal/prf"
	"github.com/hashsig-labs/winternitz-go/th"
)

// ErrKeyConsumed is returned when a secret key is asked to sign twice.
var ErrKeyConsumed = errors.New("secret key already consumed by a signature")

// ErrWrongEpoch is returned when signing with a key bound to another epoch.
var ErrWrongEpoch = errors.New("secret key not bound to this epoch")

// ErrMessageLength is returned for messages of the wrong fixed length.
var ErrMessageLength = errors.New("message has wrong length")

// SigningError reports an encoding that kept failing across retries
type SigningError struct {
	Message  string
	Attempts int
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("%s after %d attempts", e.Message, e.Attempts)
}

// PublicKey holds the chain-end domain elements, one per chain
type PublicKey struct {
	Parameter th.Params
	ChainEnds []th.Domain
}

// SecretKey holds the chain-start domain elements, one per chain.
// A secret key is bound to one epoch and signs at most once.
type SecretKey struct {
	Parameter   th.Params
	Epoch       uint32
	ChainStarts []th.Domain

	used atomic.Bool
}

// Signature is the per-signature randomness plus one chain value per
// chain, each at the position dictated by the codeword.
type Signature struct {
	Rho    []byte
	Hashes []th.Domain
}

// WinternitzOTS composes a tweakable hash with an incomparable encoding
type WinternitzOTS struct {
	th  th.TweakableHash
	enc encoding.IncomparableEncoding
}

// Chains with no data dependency are fanned out to goroutines above
// this count, matching the cost where spawning pays off.
const parallelThreshold = 20

// NewWinternitzOTS creates a scheme instance. The encoding's base and
// dimension must fit the u16 chain tweak fields; violations are
// configuration errors and rejected here.
func NewWinternitzOTS(enc encoding.IncomparableEncoding, thash th.TweakableHash) *WinternitzOTS {
	if enc.Base() > 1<<16 {
		panic("winternitz ots: encoding base exceeds chain position width")
	}
	if enc.Dimension() > 1<<16 {
		panic("winternitz ots: encoding dimension exceeds chain index width")
	}

	return &WinternitzOTS{
		th:  thash,
		enc: enc,
	}
}

// KeyGen samples one secret start per chain and walks every chain to its
// end. The key pair is bound to the given epoch: every chain tweak mixes
// it in, so chain ends are only reproducible at the same epoch.
func (w *WinternitzOTS) KeyGen(rng io.Reader, epoch uint32) (*PublicKey, *SecretKey) {
	parameter := w.th.RandParameter(rng)

	// The RNG is sequential shared state: sample all starts before
	// fanning out the walks.
	numChains := w.enc.Dimension()
	starts := make([]th.Domain, numChains)
	for i := range starts {
		starts[i] = w.th.RandDomain(rng)
	}

	return w.buildKeys(parameter, epoch, starts)
}

// KeyGenFromSeed derives the secret starts from a PRF key instead of
// sampling them, so the key material can be regenerated from the seed.
// The parameter is still sampled fresh.
func (w *WinternitzOTS) KeyGenFromSeed(rng io.Reader, f prf.PRF, prfKey []byte, epoch uint32) (*PublicKey, *SecretKey) {
	parameter := w.th.RandParameter(rng)

	numChains := w.enc.Dimension()
	starts := make([]th.Domain, numChains)
	for i := range starts {
		starts[i] = f.Apply(prfKey, epoch, uint64(i))
	}

	return w.buildKeys(parameter, epoch, starts)
}

func (w *WinternitzOTS) buildKeys(parameter th.Params, epoch uint32, starts []th.Domain) (*PublicKey, *SecretKey) {
	numChains := w.enc.Dimension()
	chainLength := w.enc.Base()

	ends := make([]th.Domain, numChains)
	walk := func(chainIndex int) {
		ends[chainIndex] = th.Chain(
			w.th,
			parameter,
			epoch,
			uint16(chainIndex),
			0,
			chainLength-1,
			starts[chainIndex],
		)
	}

	if numChains > parallelThreshold {
		var wg sync.WaitGroup
		wg.Add(numChains)
		for i := 0; i < numChains; i++ {
			go func(chainIndex int) {
				defer wg.Done()
				walk(chainIndex)
			}(i)
		}
		wg.Wait()
	} else {
		for i := 0; i < numChains; i++ {
			walk(i)
		}
	}

	pk := &PublicKey{
		Parameter: parameter,
		ChainEnds: ends,
	}
	sk := &SecretKey{
		Parameter:   parameter,
		Epoch:       epoch,
		ChainStarts: starts,
	}
	return pk, sk
}

// Sign encodes the message with fresh randomness and walks each chain
// from its secret start to the position given by the codeword. The
// secret key is consumed: a second call returns ErrKeyConsumed and the
// chain starts are wiped after the first signature.
func (w *WinternitzOTS) Sign(rng io.Reader, sk *SecretKey, epoch uint32, message []byte) (*Signature, error) {
	if len(message) != th.MessageLength {
		return nil, ErrMessageLength
	}
	if epoch != sk.Epoch {
		return nil, ErrWrongEpoch
	}
	if !sk.used.CompareAndSwap(false, true) {
		return nil, ErrKeyConsumed
	}

	maxTries := w.enc.MaxTries()
	var codeword encoding.Codeword
	var rho []byte

	for attempts := 0; ; attempts++ {
		if attempts == maxTries {
			return nil, &SigningError{
				Message:  "failed to encode message",
				Attempts: maxTries,
			}
		}

		rho = w.enc.RandRandomness(rng)

		var err error
		codeword, err = w.enc.Encode(sk.Parameter, message, rho, epoch)
		if err == nil {
			break
		}
	}

	numChains := w.enc.Dimension()
	hashes := make([]th.Domain, numChains)
	walk := func(chainIndex int) {
		hashes[chainIndex] = th.Chain(
			w.th,
			sk.Parameter,
			epoch,
			uint16(chainIndex),
			0,
			int(codeword[chainIndex]),
			sk.ChainStarts[chainIndex],
		)
	}

	if numChains > parallelThreshold {
		var wg sync.WaitGroup
		wg.Add(numChains)
		for i := 0; i < numChains; i++ {
			go func(chainIndex int) {
				defer wg.Done()
				walk(chainIndex)
			}(i)
		}
		wg.Wait()
	} else {
		for i := 0; i < numChains; i++ {
			walk(i)
		}
	}

	// One-time key: drop the secret starts now that they are spent.
	for _, start := range sk.ChainStarts {
		for i := range start {
			start[i] = 0
		}
	}
	sk.ChainStarts = nil

	return &Signature{
		Rho:    rho,
		Hashes: hashes,
	}, nil
}

// Verify recomputes the codeword from the signature's randomness, walks
// every chain value up to its end, and compares against the public key.
// A failed verification is an expected outcome, never an error.
func (w *WinternitzOTS) Verify(pk *PublicKey, epoch uint32, message []byte, sig *Signature) bool {
	if sig == nil || len(message) != th.MessageLength {
		return false
	}

	numChains := w.enc.Dimension()
	if len(sig.Hashes) != numChains || len(pk.ChainEnds) != numChains {
		return false
	}

	codeword, err := w.enc.Encode(pk.Parameter, message, sig.Rho, epoch)
	if err != nil {
		return false
	}
	if len(codeword) != numChains {
		return false
	}

	chainLength := w.enc.Base()
	ends := make([]th.Domain, numChains)
	walk := func(chainIndex int) {
		xi := codeword[chainIndex]
		ends[chainIndex] = th.Chain(
			w.th,
			pk.Parameter,
			epoch,
			uint16(chainIndex),
			uint16(xi),
			chainLength-1-int(xi),
			sig.Hashes[chainIndex],
		)
	}

	if numChains > parallelThreshold {
		var wg sync.WaitGroup
		wg.Add(numChains)
		for i := 0; i < numChains; i++ {
			go func(chainIndex int) {
				defer wg.Done()
				walk(chainIndex)
			}(i)
		}
		wg.Wait()
	} else {
		for i := 0; i < numChains; i++ {
			walk(i)
		}
	}

	for chainIndex := 0; chainIndex < numChains; chainIndex++ {
		if !bytes.Equal(ends[chainIndex], pk.ChainEnds[chainIndex]) {
			return false
		}
	}

	return true
}
