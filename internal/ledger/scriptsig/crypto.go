package scriptsig

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// HashType is the signature-hash flag byte appended to every signature
// constant in a script signature.
type HashType byte

// Signature-hash flags.
const (
	SigHashAll          HashType = 0x01
	SigHashNone         HashType = 0x02
	SigHashSingle       HashType = 0x03
	SigHashAnyOneCanPay HashType = 0x80
)

// ParseSignature splits a signature constant into its DER-encoded ECDSA
// signature and trailing hash-type byte.
func ParseSignature(sig []byte) (*ecdsa.Signature, HashType, error) {
	if len(sig) < 2 {
		return nil, 0, fmt.Errorf("signature constant too short: %d bytes", len(sig))
	}
	parsed, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	if err != nil {
		return nil, 0, fmt.Errorf("parse DER signature: %w", err)
	}
	return parsed, HashType(sig[len(sig)-1]), nil
}

// ParsePublicKey parses a pushed public key constant.
func ParsePublicKey(pubKey []byte) (*btcec.PublicKey, error) {
	parsed, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return parsed, nil
}
