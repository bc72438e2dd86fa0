// Package script provides the script token stream and the output-script
// classifier consumed by the script-signature model and the wire codec.
//
// A parsed script is an ordered sequence of tokens. Concatenating the
// byte encodings of the tokens reproduces the original script bytes
// exactly; every higher-level view (classification, redeem-script
// reconstruction) relies on that invariant.
package script

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// TokenKind discriminates the three token shapes a script parses into.
type TokenKind uint8

const (
	// KindOpcode is a plain operation, including the numeric constants
	// OP_0 through OP_16.
	KindOpcode TokenKind = iota
	// KindPushPrefix is a push operation together with its length bytes,
	// carried as a single token so that a pushed constant is always
	// preceded by exactly one prefix token.
	KindPushPrefix
	// KindConstant is pushed data.
	KindConstant
)

// Token is a single element of a parsed script. Its identity is its exact
// byte encoding.
type Token struct {
	kind TokenKind
	raw  []byte
}

// OpcodeToken returns a token for a plain opcode.
func OpcodeToken(op byte) Token {
	return Token{kind: KindOpcode, raw: []byte{op}}
}

// ConstantToken returns a token for pushed data.
func ConstantToken(data []byte) Token {
	return Token{kind: KindConstant, raw: append([]byte(nil), data...)}
}

// Kind reports the token's shape.
func (t Token) Kind() TokenKind { return t.kind }

// Bytes returns a copy of the token's exact byte encoding. Callers may
// mutate the result without affecting the token.
func (t Token) Bytes() []byte { return append([]byte(nil), t.raw...) }

// Data returns a copy of the pushed bytes of a constant token and nil
// for operation tokens.
func (t Token) Data() []byte {
	if t.kind != KindConstant {
		return nil
	}
	return append([]byte(nil), t.raw...)
}

// Opcode returns the opcode byte of an operation or push-prefix token.
// It is zero for constants.
func (t Token) Opcode() byte {
	if t.kind == KindConstant || len(t.raw) == 0 {
		return 0
	}
	return t.raw[0]
}

// IsConstant reports whether the token is pushed data.
func (t Token) IsConstant() bool { return t.kind == KindConstant }

// IsPushPrefix reports whether the token is a push operation.
func (t Token) IsPushPrefix() bool { return t.kind == KindPushPrefix }

// IsNumeric reports whether the token evaluates to a small number: one
// of the numeric-constant opcodes (OP_0, OP_1NEGATE, OP_1..OP_16), or a
// pushed single byte carrying one of those opcode values. The pushed
// form matters to the spending-script classifiers, which must not take
// a pushed number for a signature or key.
func (t Token) IsNumeric() bool {
	switch t.kind {
	case KindOpcode:
		return isNumericOpcode(t.raw[0])
	case KindConstant:
		return len(t.raw) == 1 && isNumericOpcode(t.raw[0])
	default:
		return false
	}
}

// PushLength returns the declared data length of a push-prefix token.
func (t Token) PushLength() int {
	if t.kind != KindPushPrefix {
		return 0
	}
	switch t.raw[0] {
	case OpPushData1:
		return int(t.raw[1])
	case OpPushData2:
		return int(binary.LittleEndian.Uint16(t.raw[1:3]))
	case OpPushData4:
		return int(binary.LittleEndian.Uint32(t.raw[1:5]))
	default:
		return int(t.raw[0])
	}
}

// String renders the token the way script disassembly does: opcode names
// for operations, hex for constants.
func (t Token) String() string {
	switch t.kind {
	case KindConstant:
		return hex.EncodeToString(t.raw)
	case KindPushPrefix:
		return OpcodeName(t.raw[0])
	default:
		return OpcodeName(t.raw[0])
	}
}

// PushTokens returns the minimal token pair pushing data onto the stack:
// a push prefix followed by the constant. Empty data collapses to OP_0.
func PushTokens(data []byte) []Token {
	if len(data) == 0 {
		return []Token{OpcodeToken(OP0)}
	}

	var prefix []byte
	switch n := len(data); {
	case n <= maxDirectPush:
		prefix = []byte{byte(n)}
	case n <= 0xff:
		prefix = []byte{OpPushData1, byte(n)}
	case n <= 0xffff:
		prefix = make([]byte, 3)
		prefix[0] = OpPushData2
		binary.LittleEndian.PutUint16(prefix[1:], uint16(n))
	default:
		prefix = make([]byte, 5)
		prefix[0] = OpPushData4
		binary.LittleEndian.PutUint32(prefix[1:], uint32(n))
	}

	return []Token{
		{kind: KindPushPrefix, raw: prefix},
		ConstantToken(data),
	}
}

// Tokenize parses raw script bytes into a token sequence. It fails when a
// push prefix declares more data than remains.
func Tokenize(raw []byte) ([]Token, error) {
	var tokens []Token
	for i := 0; i < len(raw); {
		op := raw[i]

		var prefixLen, dataLen int
		switch {
		case op >= 1 && op <= maxDirectPush:
			prefixLen, dataLen = 1, int(op)
		case op == OpPushData1:
			if len(raw) < i+2 {
				return nil, fmt.Errorf("tokenize: truncated OP_PUSHDATA1 length at offset %d", i)
			}
			prefixLen, dataLen = 2, int(raw[i+1])
		case op == OpPushData2:
			if len(raw) < i+3 {
				return nil, fmt.Errorf("tokenize: truncated OP_PUSHDATA2 length at offset %d", i)
			}
			prefixLen, dataLen = 3, int(binary.LittleEndian.Uint16(raw[i+1:i+3]))
		case op == OpPushData4:
			if len(raw) < i+5 {
				return nil, fmt.Errorf("tokenize: truncated OP_PUSHDATA4 length at offset %d", i)
			}
			prefixLen, dataLen = 5, int(binary.LittleEndian.Uint32(raw[i+1:i+5]))
		default:
			tokens = append(tokens, OpcodeToken(op))
			i++
			continue
		}

		if len(raw) < i+prefixLen+dataLen {
			return nil, fmt.Errorf("tokenize: push of %d bytes at offset %d exceeds script end", dataLen, i)
		}
		tokens = append(tokens,
			Token{kind: KindPushPrefix, raw: append([]byte(nil), raw[i:i+prefixLen]...)},
			ConstantToken(raw[i+prefixLen:i+prefixLen+dataLen]),
		)
		i += prefixLen + dataLen
	}
	return tokens, nil
}

// Serialize concatenates the byte encodings of tokens, reproducing the
// script bytes they were parsed from.
func Serialize(tokens []Token) []byte {
	var total int
	for _, t := range tokens {
		total += len(t.raw)
	}
	out := make([]byte, 0, total)
	for _, t := range tokens {
		out = append(out, t.raw...)
	}
	return out
}
