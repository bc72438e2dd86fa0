package script

import "fmt"

// Opcodes used by the tokenizer and the script classifiers. Only the
// opcodes this package needs to recognize by name are listed; everything
// else round-trips as an anonymous opcode token.
const (
	OP0                   = 0x00
	OpPushData1           = 0x4c
	OpPushData2           = 0x4d
	OpPushData4           = 0x4e
	Op1Negate             = 0x4f
	Op1                   = 0x51
	Op16                  = 0x60
	OpReturn              = 0x6a
	OpDrop                = 0x75
	OpDup                 = 0x76
	OpEqual               = 0x87
	OpEqualVerify         = 0x88
	OpHash160             = 0xa9
	OpCheckSig            = 0xac
	OpCheckMultiSig       = 0xae
	OpCheckLockTimeVerify = 0xb1
	OpCheckSequenceVerify = 0xb2
)

// maxDirectPush is the largest data length encodable with a single-byte
// push prefix; longer pushes need OP_PUSHDATA1/2/4.
const maxDirectPush = 75

var opcodeNames = map[byte]string{
	OP0:                   "OP_0",
	OpPushData1:           "OP_PUSHDATA1",
	OpPushData2:           "OP_PUSHDATA2",
	OpPushData4:           "OP_PUSHDATA4",
	Op1Negate:             "OP_1NEGATE",
	OpReturn:              "OP_RETURN",
	OpDrop:                "OP_DROP",
	OpDup:                 "OP_DUP",
	OpEqual:               "OP_EQUAL",
	OpEqualVerify:         "OP_EQUALVERIFY",
	OpHash160:             "OP_HASH160",
	OpCheckSig:            "OP_CHECKSIG",
	OpCheckMultiSig:       "OP_CHECKMULTISIG",
	OpCheckLockTimeVerify: "OP_CHECKLOCKTIMEVERIFY",
	OpCheckSequenceVerify: "OP_CHECKSEQUENCEVERIFY",
}

// OpcodeName returns a human readable name for an opcode byte.
func OpcodeName(op byte) string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	if op >= Op1 && op <= Op16 {
		return fmt.Sprintf("OP_%d", op-Op1+1)
	}
	if op >= 1 && op <= maxDirectPush {
		return fmt.Sprintf("OP_DATA_%d", op)
	}
	return fmt.Sprintf("OP_UNKNOWN(0x%02x)", op)
}

// isNumericOpcode reports whether op pushes a small number onto the stack
// (OP_0, OP_1NEGATE, OP_1 through OP_16).
func isNumericOpcode(op byte) bool {
	return op == OP0 || op == Op1Negate || (op >= Op1 && op <= Op16)
}

// SmallIntOpcode returns the numeric opcode encoding n, which must be in
// the range 0 through 16.
func SmallIntOpcode(n int) (byte, error) {
	if n < 0 || n > 16 {
		return 0, fmt.Errorf("no small int opcode for %d", n)
	}
	if n == 0 {
		return OP0, nil
	}
	return Op1 + byte(n-1), nil
}
