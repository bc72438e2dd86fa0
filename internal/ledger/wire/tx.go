package wire

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// DefaultTxVersion is the version stamped on transactions built without
// an explicit one.
const DefaultTxVersion uint32 = 1

// Tx is an immutable ledger transaction. Updates never mutate in place:
// the With* constructors derive a new value sharing the unchanged fields,
// so earlier values stay valid for concurrent readers.
type Tx struct {
	version  uint32
	inputs   []TxIn
	outputs  []TxOut
	lockTime uint32

	// txid caches the derived identity hash. Concurrent first accesses
	// may both compute it; they converge on the same value.
	txid atomic.Pointer[chainhash.Hash]
}

// NewTx builds a transaction from its four fields. The input and output
// slices are copied.
func NewTx(version uint32, inputs []TxIn, outputs []TxOut, lockTime uint32) *Tx {
	return &Tx{
		version:  version,
		inputs:   append([]TxIn(nil), inputs...),
		outputs:  append([]TxOut(nil), outputs...),
		lockTime: lockTime,
	}
}

var emptyTx = NewTx(DefaultTxVersion, nil, nil, 0)

// EmptyTx returns the distinguished empty transaction: default version
// and lock time, no inputs, no outputs. It is a safe placeholder, never a
// valid ledger entry, and has a fixed well-known identity hash.
func EmptyTx() *Tx { return emptyTx }

// Version returns the transaction version.
func (t *Tx) Version() uint32 { return t.version }

// LockTime returns the transaction lock time.
func (t *Tx) LockTime() uint32 { return t.lockTime }

// Inputs returns the ordered inputs. The slice is a copy; the transaction
// itself never changes.
func (t *Tx) Inputs() []TxIn { return append([]TxIn(nil), t.inputs...) }

// Outputs returns the ordered outputs as a copy.
func (t *Tx) Outputs() []TxOut { return append([]TxOut(nil), t.outputs...) }

// NumInputs returns the input count.
func (t *Tx) NumInputs() int { return len(t.inputs) }

// NumOutputs returns the output count.
func (t *Tx) NumOutputs() int { return len(t.outputs) }

// Input returns the input at index i.
func (t *Tx) Input(i int) (TxIn, error) {
	if i < 0 || i >= len(t.inputs) {
		return TxIn{}, fmt.Errorf("input index %d out of range, transaction has %d inputs", i, len(t.inputs))
	}
	return t.inputs[i], nil
}

// IsCoinbase reports whether the transaction has exactly one input and
// that input is the distinguished coinbase kind.
func (t *Tx) IsCoinbase() bool {
	return len(t.inputs) == 1 && t.inputs[0].IsCoinbase()
}

// WithInputs derives a new transaction with the inputs replaced and every
// other field carried over.
func (t *Tx) WithInputs(inputs []TxIn) *Tx {
	return &Tx{
		version:  t.version,
		inputs:   append([]TxIn(nil), inputs...),
		outputs:  t.outputs,
		lockTime: t.lockTime,
	}
}

// WithOutputs derives a new transaction with the outputs replaced.
func (t *Tx) WithOutputs(outputs []TxOut) *Tx {
	return &Tx{
		version:  t.version,
		inputs:   t.inputs,
		outputs:  append([]TxOut(nil), outputs...),
		lockTime: t.lockTime,
	}
}

// WithLockTime derives a new transaction with the lock time replaced.
func (t *Tx) WithLockTime(lockTime uint32) *Tx {
	return &Tx{
		version:  t.version,
		inputs:   t.inputs,
		outputs:  t.outputs,
		lockTime: lockTime,
	}
}

// Serialize encodes the transaction: 4-byte version, input vector, output
// vector, 4-byte lock time, all little-endian.
func (t *Tx) Serialize() []byte {
	buf := make([]byte, 4, 4+len(t.inputs)*48+len(t.outputs)*34+4)
	binary.LittleEndian.PutUint32(buf, t.version)
	buf = append(buf, WriteTxIns(t.inputs)...)
	buf = append(buf, WriteTxOuts(t.outputs)...)

	var lockTime [4]byte
	binary.LittleEndian.PutUint32(lockTime[:], t.lockTime)
	return append(buf, lockTime[:]...)
}

// TxID returns the transaction's identity hash: the double SHA-256 of its
// serialized form. The hash is memoized per value.
func (t *Tx) TxID() chainhash.Hash {
	if cached := t.txid.Load(); cached != nil {
		return *cached
	}
	hash := chainhash.DoubleHashH(t.Serialize())
	t.txid.Store(&hash)
	return hash
}

// ParseTx decodes a transaction from the start of buf and returns it with
// the number of bytes consumed.
func ParseTx(buf []byte) (*Tx, int, error) {
	if len(buf) < 4 {
		return nil, 0, fmt.Errorf("%w: transaction version needs 4 bytes, have %d", ErrTruncated, len(buf))
	}
	version := binary.LittleEndian.Uint32(buf[:4])
	offset := 4

	inputs, n, err := ReadTxIns(buf[offset:])
	if err != nil {
		return nil, 0, fmt.Errorf("transaction inputs: %w", err)
	}
	offset += n

	outputs, n, err := ReadTxOuts(buf[offset:])
	if err != nil {
		return nil, 0, fmt.Errorf("transaction outputs: %w", err)
	}
	offset += n

	if len(buf)-offset < 4 {
		return nil, 0, fmt.Errorf("%w: transaction lock time needs 4 bytes, have %d", ErrTruncated, len(buf)-offset)
	}
	lockTime := binary.LittleEndian.Uint32(buf[offset : offset+4])
	offset += 4

	return &Tx{version: version, inputs: inputs, outputs: outputs, lockTime: lockTime}, offset, nil
}
