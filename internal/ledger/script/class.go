package script

// Class is the recognized shape of an output (spent) script.
type Class uint8

const (
	ClassNonStandard Class = iota
	ClassEmpty
	ClassP2PK
	ClassP2PKH
	ClassP2SH
	ClassMultisig
	ClassCLTV
	ClassCSV
)

var classNames = map[Class]string{
	ClassNonStandard: "nonstandard",
	ClassEmpty:       "empty",
	ClassP2PK:        "pubkey",
	ClassP2PKH:       "pubkeyhash",
	ClassP2SH:        "scripthash",
	ClassMultisig:    "multisig",
	ClassCLTV:        "cltv",
	ClassCSV:         "csv",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "invalid"
}

const (
	hash160Len            = 20
	compressedPubKeyLen   = 33
	uncompressedPubKeyLen = 65
)

// ClassifyTokens determines the shape of an output script from its token
// sequence. Unrecognized shapes classify as ClassNonStandard; there is no
// error path.
func ClassifyTokens(tokens []Token) Class {
	switch {
	case len(tokens) == 0:
		return ClassEmpty
	case isP2PKH(tokens):
		return ClassP2PKH
	case isP2SH(tokens):
		return ClassP2SH
	case isP2PK(tokens):
		return ClassP2PK
	case isMultisig(tokens):
		return ClassMultisig
	default:
		if _, ok := lockTimeNested(tokens, OpCheckLockTimeVerify); ok {
			return ClassCLTV
		}
		if _, ok := lockTimeNested(tokens, OpCheckSequenceVerify); ok {
			return ClassCSV
		}
		return ClassNonStandard
	}
}

// Classify tokenizes raw output-script bytes and classifies them. Scripts
// that fail to tokenize are nonstandard.
func Classify(raw []byte) Class {
	if len(raw) == 0 {
		return ClassEmpty
	}
	tokens, err := Tokenize(raw)
	if err != nil {
		return ClassNonStandard
	}
	return ClassifyTokens(tokens)
}

// LockTimeNested returns the tokens of the script that becomes spendable
// once a CLTV or CSV wrapper's time lock passes. ok is false when tokens
// are not a time-locked wrapper.
func LockTimeNested(tokens []Token) ([]Token, bool) {
	if nested, ok := lockTimeNested(tokens, OpCheckLockTimeVerify); ok {
		return nested, true
	}
	return lockTimeNested(tokens, OpCheckSequenceVerify)
}

// isP2PKH matches OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG.
func isP2PKH(tokens []Token) bool {
	return len(tokens) == 6 &&
		tokens[0].Opcode() == OpDup &&
		tokens[1].Opcode() == OpHash160 &&
		tokens[2].IsPushPrefix() &&
		tokens[3].IsConstant() && len(tokens[3].Data()) == hash160Len &&
		tokens[4].Opcode() == OpEqualVerify &&
		tokens[5].Opcode() == OpCheckSig
}

// isP2SH matches OP_HASH160 <20-byte hash> OP_EQUAL.
func isP2SH(tokens []Token) bool {
	return len(tokens) == 4 &&
		tokens[0].Opcode() == OpHash160 &&
		tokens[1].IsPushPrefix() &&
		tokens[2].IsConstant() && len(tokens[2].Data()) == hash160Len &&
		tokens[3].Opcode() == OpEqual
}

// isP2PK matches <pubkey> OP_CHECKSIG.
func isP2PK(tokens []Token) bool {
	if len(tokens) != 3 {
		return false
	}
	keyLen := len(tokens[1].Data())
	return tokens[0].IsPushPrefix() &&
		tokens[1].IsConstant() &&
		(keyLen == compressedPubKeyLen || keyLen == uncompressedPubKeyLen) &&
		tokens[2].Opcode() == OpCheckSig
}

// isMultisig matches OP_m <pubkeys...> OP_n OP_CHECKMULTISIG.
func isMultisig(tokens []Token) bool {
	if len(tokens) < 4 {
		return false
	}
	if !tokens[0].IsNumeric() || !tokens[len(tokens)-2].IsNumeric() {
		return false
	}
	if tokens[len(tokens)-1].Opcode() != OpCheckMultiSig {
		return false
	}
	for _, t := range tokens[1 : len(tokens)-2] {
		if !t.IsPushPrefix() && !t.IsConstant() {
			return false
		}
	}
	return true
}

// lockTimeNested matches <locktime> <verifyOp> OP_DROP <nested script>,
// where the lock time is either a numeric opcode or a pushed number.
func lockTimeNested(tokens []Token, verifyOp byte) ([]Token, bool) {
	if len(tokens) >= 3 && tokens[0].IsNumeric() &&
		tokens[1].Opcode() == verifyOp && tokens[2].Opcode() == OpDrop {
		if nested := tokens[3:]; len(nested) > 0 {
			return nested, true
		}
		return nil, false
	}
	if len(tokens) >= 4 && tokens[0].IsPushPrefix() && tokens[1].IsConstant() &&
		tokens[2].Opcode() == verifyOp && tokens[3].Opcode() == OpDrop {
		if nested := tokens[4:]; len(nested) > 0 {
			return nested, true
		}
	}
	return nil, false
}
