package scriptsig

import (
	"fmt"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/script"
)

// Empty returns the empty script signature.
func Empty() ScriptSig {
	return ScriptSig{kind: KindEmpty}
}

// NewP2PK assembles the canonical pay-to-pubkey script signature for one
// signature.
func NewP2PK(sig []byte) ScriptSig {
	return fromTokens(KindP2PK, script.PushTokens(sig))
}

// NewP2PKH assembles the canonical pay-to-pubkey-hash script signature
// from one signature and one public key.
func NewP2PKH(sig, pubKey []byte) ScriptSig {
	tokens := append(script.PushTokens(sig), script.PushTokens(pubKey)...)
	return fromTokens(KindP2PKH, tokens)
}

// NewMultisig assembles the canonical multisignature script signature. The
// dummy numeric placeholder consumed by the multisig verification opcode
// is always prepended, even for zero signatures.
func NewMultisig(sigs [][]byte) ScriptSig {
	tokens := []script.Token{script.OpcodeToken(script.OP0)}
	for _, sig := range sigs {
		tokens = append(tokens, script.PushTokens(sig)...)
	}
	return fromTokens(KindMultisig, tokens)
}

// NewP2SH assembles a pay-to-script-hash script signature from the inner
// script signature satisfying the redeem script, followed by the pushed
// redeem script itself.
func NewP2SH(inner ScriptSig, redeemScript []byte) (ScriptSig, error) {
	innerTokens, err := inner.Tokens()
	if err != nil {
		return ScriptSig{}, fmt.Errorf("inner script signature: %w", err)
	}
	tokens := append(innerTokens, script.PushTokens(redeemScript)...)
	return fromTokens(KindP2SH, tokens), nil
}

// NewCLTV builds the script signature satisfying a CLTV-wrapped spent
// script, resolving the inner constructor from the script that becomes
// spendable after the time lock.
func NewCLTV(spentScript []byte, sigs, pubKeys [][]byte) (ScriptSig, error) {
	return buildForSpent(spentScript, sigs, pubKeys)
}

// NewCSV builds the script signature satisfying a CSV-wrapped spent
// script. See NewCLTV.
func NewCSV(spentScript []byte, sigs, pubKeys [][]byte) (ScriptSig, error) {
	return buildForSpent(spentScript, sigs, pubKeys)
}

// buildForSpent resolves the constructor for a spent script's class,
// unwrapping arbitrarily nested time-lock wrappers. Nonstandard and P2SH
// spent scripts cannot be resolved generically: P2SH needs an explicitly
// supplied redeem script through NewP2SH.
func buildForSpent(spentScript []byte, sigs, pubKeys [][]byte) (ScriptSig, error) {
	switch class := script.Classify(spentScript); class {
	case script.ClassCLTV, script.ClassCSV:
		tokens, err := script.Tokenize(spentScript)
		if err != nil {
			return ScriptSig{}, fmt.Errorf("tokenize spent script: %w", err)
		}
		nested, ok := script.LockTimeNested(tokens)
		if !ok {
			return ScriptSig{}, fmt.Errorf("%w: malformed %s wrapper", ErrUnsupportedScript, class)
		}
		return buildForSpent(script.Serialize(nested), sigs, pubKeys)

	case script.ClassP2PK:
		if len(sigs) != 1 {
			return ScriptSig{}, fmt.Errorf("%w: pay-to-pubkey needs exactly 1 signature, got %d", ErrShapeMismatch, len(sigs))
		}
		return NewP2PK(sigs[0]), nil

	case script.ClassP2PKH:
		if len(sigs) != 1 || len(pubKeys) != 1 {
			return ScriptSig{}, fmt.Errorf("%w: pay-to-pubkey-hash needs exactly 1 signature and 1 public key, got %d and %d",
				ErrShapeMismatch, len(sigs), len(pubKeys))
		}
		return NewP2PKH(sigs[0], pubKeys[0]), nil

	case script.ClassMultisig:
		return NewMultisig(sigs), nil

	default:
		return ScriptSig{}, fmt.Errorf("%w: cannot resolve a signature for a %s spent script", ErrUnsupportedScript, class)
	}
}

// P2PKFromTokens builds a pay-to-pubkey value from an already parsed
// token sequence, rejecting sequences that violate the variant shape.
func P2PKFromTokens(tokens []script.Token) (ScriptSig, error) {
	if !looksLikeP2PK(tokens) {
		return ScriptSig{}, fmt.Errorf("%w: %d tokens do not form a pay-to-pubkey signature", ErrShapeMismatch, len(tokens))
	}
	return fromTokens(KindP2PK, tokens), nil
}

// P2PKHFromTokens builds a pay-to-pubkey-hash value from an already
// parsed token sequence, rejecting sequences that violate the variant
// shape.
func P2PKHFromTokens(tokens []script.Token) (ScriptSig, error) {
	if !looksLikeP2PKH(tokens) {
		return ScriptSig{}, fmt.Errorf("%w: %d tokens do not form a pay-to-pubkey-hash signature", ErrShapeMismatch, len(tokens))
	}
	return fromTokens(KindP2PKH, tokens), nil
}

// MultisigFromTokens builds a multisignature value from an already parsed
// token sequence, rejecting sequences that violate the variant shape.
func MultisigFromTokens(tokens []script.Token) (ScriptSig, error) {
	if !looksLikeMultisig(tokens) {
		return ScriptSig{}, fmt.Errorf("%w: tokens do not form a multisignature script signature", ErrShapeMismatch)
	}
	return fromTokens(KindMultisig, tokens), nil
}

// P2SHFromTokens builds a pay-to-script-hash value from an already parsed
// token sequence, requiring only that a redeem-script split is possible.
func P2SHFromTokens(tokens []script.Token) (ScriptSig, error) {
	if _, _, err := SplitRedeemScript(tokens); err != nil {
		return ScriptSig{}, err
	}
	return fromTokens(KindP2SH, tokens), nil
}
