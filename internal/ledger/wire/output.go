// Package wire implements the binary codec for ledger transactions:
// outputs, inputs and the immutable transaction aggregate. Serialization
// is byte-exact; reading back anything this package wrote reproduces the
// original bytes.
package wire

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/txinsight7000-backend/pkg/compactsize"
)

// ErrTruncated reports input that ends before a declared field does.
var ErrTruncated = errors.New("truncated input")

// TxOut is a single spendable output: an amount and the script encoding
// its spending conditions.
type TxOut struct {
	Value    btcutil.Amount
	PkScript []byte
}

// ReadTxOut reads one output from the start of buf and returns it along
// with the number of bytes consumed.
func ReadTxOut(buf []byte) (TxOut, int, error) {
	value, err := ReadAmount(buf)
	if err != nil {
		return TxOut{}, 0, fmt.Errorf("output amount: %w", err)
	}
	offset := amountSize

	scriptLen, n, err := compactsize.Decode(buf[offset:])
	if err != nil {
		return TxOut{}, 0, fmt.Errorf("output script length: %w", err)
	}
	offset += n

	if uint64(len(buf)-offset) < scriptLen {
		return TxOut{}, 0, fmt.Errorf("%w: output script needs %d bytes, have %d", ErrTruncated, scriptLen, len(buf)-offset)
	}
	var pkScript []byte
	if scriptLen > 0 {
		pkScript = append([]byte(nil), buf[offset:offset+int(scriptLen)]...)
	}
	offset += int(scriptLen)

	return TxOut{Value: value, PkScript: pkScript}, offset, nil
}

// ReadTxOuts reads a compact-size count followed by that many outputs,
// in wire order, and returns the outputs with the bytes consumed.
func ReadTxOuts(buf []byte) ([]TxOut, int, error) {
	count, offset, err := compactsize.Decode(buf)
	if err != nil {
		return nil, 0, fmt.Errorf("output count: %w", err)
	}

	outputs := make([]TxOut, 0, count)
	for i := uint64(0); i < count; i++ {
		out, n, err := ReadTxOut(buf[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("output %d: %w", i, err)
		}
		outputs = append(outputs, out)
		offset += n
	}
	return outputs, offset, nil
}

// AppendTxOut appends the wire encoding of out to dst: 8-byte amount,
// compact-size script length, script bytes. An empty script encodes as
// the single zero length byte with nothing following it.
func AppendTxOut(dst []byte, out TxOut) []byte {
	dst = AppendAmount(dst, out.Value)
	dst = append(dst, compactsize.Encode(uint64(len(out.PkScript)))...)
	return append(dst, out.PkScript...)
}

// WriteTxOuts encodes the output vector: compact-size count followed by
// each output, in input order.
func WriteTxOuts(outputs []TxOut) []byte {
	buf := compactsize.Encode(uint64(len(outputs)))
	for _, out := range outputs {
		buf = AppendTxOut(buf, out)
	}
	return buf
}
