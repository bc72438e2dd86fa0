// Package signing provides the immutable signing-context value handed to
// signature-hash computation: a transaction, the input being signed, the
// script of the output that input spends, and the verification flags in
// force.
package signing

import (
	"fmt"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/script"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/scriptsig"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/wire"
)

// Flags is the set of script verification flags in force for a signing
// or verification operation.
type Flags uint32

const (
	// VerifyP2SH evaluates pay-to-script-hash redeem scripts.
	VerifyP2SH Flags = 1 << iota
	// VerifyStrictEncoding requires canonical signature and pubkey
	// encodings.
	VerifyStrictEncoding
	// VerifyDERSignatures requires DER-encoded signatures.
	VerifyDERSignatures
	// VerifyLowS requires the S half of signatures to be at most the
	// curve order halved.
	VerifyLowS
	// VerifyCheckLockTimeVerify enforces absolute lock times.
	VerifyCheckLockTimeVerify
	// VerifyCheckSequenceVerify enforces relative lock times.
	VerifyCheckSequenceVerify
)

// StandardFlags is the flag set applied to standard transactions.
const StandardFlags = VerifyP2SH | VerifyStrictEncoding | VerifyDERSignatures |
	VerifyLowS | VerifyCheckLockTimeVerify | VerifyCheckSequenceVerify

// Has reports whether every flag in mask is set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Context is the immutable tuple consumed by signature-hash computation.
type Context struct {
	tx          *wire.Tx
	inputIndex  uint32
	spentScript []byte
	flags       Flags
}

// NewContext builds a signing context. The input index must address an
// existing input of the transaction.
func NewContext(tx *wire.Tx, inputIndex uint32, spentScript []byte, flags Flags) (*Context, error) {
	if int(inputIndex) >= tx.NumInputs() {
		return nil, fmt.Errorf("input index %d out of range, transaction has %d inputs", inputIndex, tx.NumInputs())
	}
	return &Context{
		tx:          tx,
		inputIndex:  inputIndex,
		spentScript: append([]byte(nil), spentScript...),
		flags:       flags,
	}, nil
}

// WithSpentScript derives a new context with only the spent-output script
// replaced, keeping the transaction, input index and flags. Used when a
// redeem script is substituted during pay-to-script-hash signing.
func (c *Context) WithSpentScript(spentScript []byte) *Context {
	return &Context{
		tx:          c.tx,
		inputIndex:  c.inputIndex,
		spentScript: append([]byte(nil), spentScript...),
		flags:       c.flags,
	}
}

// Tx returns the transaction being signed.
func (c *Context) Tx() *wire.Tx { return c.tx }

// InputIndex returns the index of the input being signed.
func (c *Context) InputIndex() uint32 { return c.inputIndex }

// SpentScript returns the script of the output the input spends.
func (c *Context) SpentScript() []byte {
	return append([]byte(nil), c.spentScript...)
}

// Flags returns the verification flags in force.
func (c *Context) Flags() Flags { return c.flags }

// ScriptSignature returns the classified script signature of the input
// being signed, dispatched by the spent script rather than the token
// shape.
func (c *Context) ScriptSignature() (scriptsig.ScriptSig, error) {
	in, err := c.tx.Input(int(c.inputIndex))
	if err != nil {
		return scriptsig.ScriptSig{}, err
	}
	tokens, err := script.Tokenize(in.SignatureScript)
	if err != nil {
		return scriptsig.ScriptSig{}, fmt.Errorf("tokenize signature script: %w", err)
	}
	return scriptsig.ClassifyForSpent(tokens, c.spentScript), nil
}
