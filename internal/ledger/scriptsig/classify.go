package scriptsig

import (
	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/script"
)

// Classify decides which variant a token sequence represents. It is total:
// unrecognized shapes fall back to the nonstandard variant, never an
// error. Decision order matters; first match wins.
func Classify(tokens []script.Token) ScriptSig {
	switch {
	case len(tokens) == 0:
		return ScriptSig{kind: KindEmpty}
	case looksLikeP2SH(tokens):
		return fromTokens(KindP2SH, tokens)
	case looksLikeMultisig(tokens):
		return fromTokens(KindMultisig, tokens)
	case looksLikeP2PKH(tokens):
		return fromTokens(KindP2PKH, tokens)
	case looksLikeP2PK(tokens):
		return fromTokens(KindP2PK, tokens)
	default:
		return fromTokens(KindNonStandard, tokens)
	}
}

// ClassifyBytes tokenizes raw script-signature bytes and classifies them.
// Bytes that do not tokenize are carried through as a nonstandard value.
func ClassifyBytes(raw []byte) ScriptSig {
	tokens, err := script.Tokenize(raw)
	if err != nil {
		return ScriptSig{kind: KindNonStandard, raw: append([]byte(nil), raw...)}
	}
	return Classify(tokens)
}

// ClassifyForSpent dispatches directly by the spent script's own class
// instead of guessing from the token shape. Time-locked wrappers recurse
// into the script that becomes spendable after the lock, however deeply
// nested.
func ClassifyForSpent(tokens []script.Token, spentScript []byte) ScriptSig {
	switch script.Classify(spentScript) {
	case script.ClassP2SH:
		return fromTokens(KindP2SH, tokens)
	case script.ClassP2PKH:
		return fromTokens(KindP2PKH, tokens)
	case script.ClassP2PK:
		return fromTokens(KindP2PK, tokens)
	case script.ClassMultisig:
		return fromTokens(KindMultisig, tokens)
	case script.ClassCLTV, script.ClassCSV:
		spentTokens, err := script.Tokenize(spentScript)
		if err != nil {
			break
		}
		if nested, ok := script.LockTimeNested(spentTokens); ok {
			return ClassifyForSpent(tokens, script.Serialize(nested))
		}
	}

	if len(tokens) == 0 {
		return ScriptSig{kind: KindEmpty}
	}
	return fromTokens(KindNonStandard, tokens)
}

// looksLikeP2SH applies the P2SH heuristic: more than one token, and the
// last token's bytes decode as a recognized spending script. This is a
// heuristic, not a proof. A script whose final push happens to decode as
// a recognized type misclassifies, and a deliberate P2SH whose redeem
// script decodes as nonstandard is missed. The ambiguity is inherent to
// the format and is kept as is.
func looksLikeP2SH(tokens []script.Token) bool {
	if len(tokens) < 2 {
		return false
	}
	last := tokens[len(tokens)-1]
	if !last.IsConstant() {
		return false
	}
	switch script.Classify(last.Data()) {
	case script.ClassP2PKH, script.ClassMultisig, script.ClassP2SH,
		script.ClassP2PK, script.ClassCLTV, script.ClassCSV:
		return true
	default:
		return false
	}
}

// looksLikeMultisig matches the dummy numeric placeholder followed by
// nothing but push operations and constants.
func looksLikeMultisig(tokens []script.Token) bool {
	if len(tokens) == 0 || !tokens[0].IsNumeric() {
		return false
	}
	for _, t := range tokens[1:] {
		if !t.IsPushPrefix() && !t.IsConstant() {
			return false
		}
	}
	return true
}

// looksLikeP2PKH matches exactly [push, signature, push, pubkey]. A
// pushed numeric value is not a signature or a key, so it does not fill
// either slot.
func looksLikeP2PKH(tokens []script.Token) bool {
	return len(tokens) == 4 &&
		tokens[0].IsPushPrefix() && tokens[1].IsConstant() && !tokens[1].IsNumeric() &&
		tokens[2].IsPushPrefix() && tokens[3].IsConstant() && !tokens[3].IsNumeric()
}

// looksLikeP2PK matches exactly [push, signature], with the same
// pushed-numeric exclusion as looksLikeP2PKH.
func looksLikeP2PK(tokens []script.Token) bool {
	return len(tokens) == 2 &&
		tokens[0].IsPushPrefix() && tokens[1].IsConstant() && !tokens[1].IsNumeric()
}
