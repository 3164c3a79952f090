package wots

import (
	"encoding/base64"
	"encoding/json"

	"github.com/hashsig-labs/winternitz-go/th"
)

// publicKeyJSON is used for JSON serialization
type publicKeyJSON struct {
	Parameter string   `json:"parameter"`
	ChainEnds []string `json:"chain_ends"`
}

// signatureJSON is used for JSON serialization
type signatureJSON struct {
	Rho    string   `json:"rho"`
	Hashes []string `json:"hashes"`
}

// MarshalJSON implements custom JSON marshaling for PublicKey
func (pk *PublicKey) MarshalJSON() ([]byte, error) {
	out := publicKeyJSON{
		Parameter: base64.StdEncoding.EncodeToString(pk.Parameter),
		ChainEnds: encodeDomains(pk.ChainEnds),
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements custom JSON unmarshaling for PublicKey
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var in publicKeyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	parameter, err := base64.StdEncoding.DecodeString(in.Parameter)
	if err != nil {
		return err
	}
	ends, err := decodeDomains(in.ChainEnds)
	if err != nil {
		return err
	}

	pk.Parameter = parameter
	pk.ChainEnds = ends
	return nil
}

// MarshalJSON implements custom JSON marshaling for Signature
func (sig *Signature) MarshalJSON() ([]byte, error) {
	out := signatureJSON{
		Rho:    base64.StdEncoding.EncodeToString(sig.Rho),
		Hashes: encodeDomains(sig.Hashes),
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements custom JSON unmarshaling for Signature
func (sig *Signature) UnmarshalJSON(data []byte) error {
	var in signatureJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	rho, err := base64.StdEncoding.DecodeString(in.Rho)
	if err != nil {
		return err
	}
	hashes, err := decodeDomains(in.Hashes)
	if err != nil {
		return err
	}

	sig.Rho = rho
	sig.Hashes = hashes
	return nil
}

func encodeDomains(domains []th.Domain) []string {
	out := make([]string, len(domains))
	for i, d := range domains {
		out[i] = base64.StdEncoding.EncodeToString(d)
	}
	return out
}

func decodeDomains(encoded []string) ([]th.Domain, error) {
	out := make([]th.Domain, len(encoded))
	for i, s := range encoded {
		d, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, err
		}
		out[i] = th.Domain(d)
	}
	return out, nil
}
