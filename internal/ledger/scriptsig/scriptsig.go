// Package scriptsig models the script-signature side of a transaction
// input: the sealed set of spending-proof variants, the classification
// that picks a variant from a parsed token sequence, and the extraction
// of signatures, public keys and redeem scripts from each variant.
package scriptsig

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/script"
)

var (
	// ErrShapeMismatch reports a variant constructor given tokens that do
	// not satisfy that variant's shape invariant.
	ErrShapeMismatch = errors.New("script signature shape mismatch")

	// ErrUnsupportedScript reports a time-locked wrapper construction
	// against a spent script whose satisfying signature cannot be resolved
	// generically (nonstandard scripts, and P2SH which needs an explicit
	// redeem script through NewP2SH).
	ErrUnsupportedScript = errors.New("unsupported spent script")
)

// Kind discriminates the sealed script-signature variants.
type Kind uint8

const (
	KindNonStandard Kind = iota
	KindEmpty
	KindP2PK
	KindP2PKH
	KindP2SH
	KindMultisig
)

var kindNames = map[Kind]string{
	KindNonStandard: "nonstandard",
	KindEmpty:       "empty",
	KindP2PK:        "pubkey",
	KindP2PKH:       "pubkeyhash",
	KindP2SH:        "scripthash",
	KindMultisig:    "multisig",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// ScriptSig is an immutable script signature. The canonical representation
// is the raw byte string; the token view is always re-derived from it, so
// serializing the token view reproduces the bytes by construction.
type ScriptSig struct {
	kind Kind
	raw  []byte
}

func fromTokens(kind Kind, tokens []script.Token) ScriptSig {
	return ScriptSig{kind: kind, raw: script.Serialize(tokens)}
}

// Kind reports the classified variant.
func (s ScriptSig) Kind() Kind { return s.kind }

// Bytes returns the canonical byte form.
func (s ScriptSig) Bytes() []byte { return append([]byte(nil), s.raw...) }

// Hex returns the canonical byte form as a hex string.
func (s ScriptSig) Hex() string { return hex.EncodeToString(s.raw) }

// IsEmpty reports whether the script signature is the empty variant.
func (s ScriptSig) IsEmpty() bool { return s.kind == KindEmpty }

// Tokens re-derives the token view from the canonical bytes. It fails only
// for nonstandard values built from bytes that do not tokenize.
func (s ScriptSig) Tokens() ([]script.Token, error) {
	return script.Tokenize(s.raw)
}

// String renders the token view, falling back to hex when the bytes do
// not tokenize.
func (s ScriptSig) String() string {
	tokens, err := s.Tokens()
	if err != nil {
		return s.Hex()
	}
	out := ""
	for i, t := range tokens {
		if i > 0 {
			out += " "
		}
		out += t.String()
	}
	return out
}

// minP2SHSignatureLen is the length cutoff used to tell signatures from
// other pushed witness data in a P2SH prefix. DER signatures run around
// 70 bytes; pushed hashes and small numbers stay well below 50.
const minP2SHSignatureLen = 50

// Signatures extracts the signature constants the variant carries, in
// script order. Empty and nonstandard variants carry none.
func (s ScriptSig) Signatures() [][]byte {
	tokens, err := s.Tokens()
	if err != nil {
		return nil
	}

	switch s.kind {
	case KindP2PK, KindP2PKH:
		if len(tokens) < 2 {
			return nil
		}
		return [][]byte{tokens[1].Data()}

	case KindMultisig:
		var sigs [][]byte
		for _, t := range tokens[1:] {
			if t.IsConstant() {
				sigs = append(sigs, t.Data())
			}
		}
		return sigs

	case KindP2SH:
		prefix, _, err := SplitRedeemScript(tokens)
		if err != nil {
			return nil
		}
		var sigs [][]byte
		for _, t := range prefix {
			if t.IsConstant() && len(t.Data()) >= minP2SHSignatureLen {
				sigs = append(sigs, t.Data())
			}
		}
		return sigs

	default:
		return nil
	}
}

// PublicKeys extracts the public key constants the variant carries. Only
// the P2PKH layout embeds a public key.
func (s ScriptSig) PublicKeys() [][]byte {
	if s.kind != KindP2PKH {
		return nil
	}
	tokens, err := s.Tokens()
	if err != nil || len(tokens) != 4 {
		return nil
	}
	return [][]byte{tokens[3].Data()}
}

// RedeemScript returns the embedded redeem script of a P2SH value.
func (s ScriptSig) RedeemScript() ([]byte, error) {
	if s.kind != KindP2SH {
		return nil, fmt.Errorf("%w: redeem script on %s value", ErrShapeMismatch, s.kind)
	}
	tokens, err := s.Tokens()
	if err != nil {
		return nil, err
	}
	_, redeem, err := SplitRedeemScript(tokens)
	if err != nil {
		return nil, err
	}
	return redeem[len(redeem)-1].Data(), nil
}

// SplitRedeemScript removes exactly the last two tokens of a P2SH script
// signature: the push prefix of the redeem script and the redeem-script
// constant. The format guarantees the redeem script is the final pushed
// item; this is a fixed arithmetic rule, not a search.
func SplitRedeemScript(tokens []script.Token) (prefix, redeem []script.Token, err error) {
	if len(tokens) < 2 {
		return nil, nil, fmt.Errorf("%w: %d tokens, need at least 2 for a redeem script split", ErrShapeMismatch, len(tokens))
	}
	return tokens[:len(tokens)-2], tokens[len(tokens)-2:], nil
}
