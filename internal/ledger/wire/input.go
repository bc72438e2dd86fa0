package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/txinsight7000-backend/pkg/compactsize"
)

// MaxTxInSequenceNum is the default sequence number carried by inputs
// that opt out of relative lock times.
const MaxTxInSequenceNum uint32 = 0xffffffff

// MaxPrevOutIndex is the output index carried by the null outpoint of a
// coinbase input.
const MaxPrevOutIndex uint32 = 0xffffffff

// outPointSize is the fixed encoded width of an outpoint.
const outPointSize = chainhash.HashSize + 4

// OutPoint references the output being spent: the funding transaction's
// hash and the output index within it.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}

// IsNull reports whether the outpoint is the distinguished null reference
// carried by coinbase inputs.
func (o OutPoint) IsNull() bool {
	return o.Index == MaxPrevOutIndex && o.Hash == chainhash.Hash{}
}

// TxIn is a single transaction input: the outpoint it spends, the script
// signature proving it may, and the sequence number.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// IsCoinbase reports whether the input is the distinguished coinbase kind.
func (in TxIn) IsCoinbase() bool {
	return in.PreviousOutPoint.IsNull()
}

// ReadTxIn reads one input from the start of buf and returns it along
// with the number of bytes consumed.
func ReadTxIn(buf []byte) (TxIn, int, error) {
	if len(buf) < outPointSize {
		return TxIn{}, 0, fmt.Errorf("%w: outpoint needs %d bytes, have %d", ErrTruncated, outPointSize, len(buf))
	}
	var in TxIn
	copy(in.PreviousOutPoint.Hash[:], buf[:chainhash.HashSize])
	in.PreviousOutPoint.Index = binary.LittleEndian.Uint32(buf[chainhash.HashSize:outPointSize])
	offset := outPointSize

	scriptLen, n, err := compactsize.Decode(buf[offset:])
	if err != nil {
		return TxIn{}, 0, fmt.Errorf("input script length: %w", err)
	}
	offset += n

	if uint64(len(buf)-offset) < scriptLen {
		return TxIn{}, 0, fmt.Errorf("%w: input script needs %d bytes, have %d", ErrTruncated, scriptLen, len(buf)-offset)
	}
	if scriptLen > 0 {
		in.SignatureScript = append([]byte(nil), buf[offset:offset+int(scriptLen)]...)
	}
	offset += int(scriptLen)

	if len(buf)-offset < 4 {
		return TxIn{}, 0, fmt.Errorf("%w: input sequence needs 4 bytes, have %d", ErrTruncated, len(buf)-offset)
	}
	in.Sequence = binary.LittleEndian.Uint32(buf[offset : offset+4])
	offset += 4

	return in, offset, nil
}

// ReadTxIns reads a compact-size count followed by that many inputs.
func ReadTxIns(buf []byte) ([]TxIn, int, error) {
	count, offset, err := compactsize.Decode(buf)
	if err != nil {
		return nil, 0, fmt.Errorf("input count: %w", err)
	}

	inputs := make([]TxIn, 0, count)
	for i := uint64(0); i < count; i++ {
		in, n, err := ReadTxIn(buf[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("input %d: %w", i, err)
		}
		inputs = append(inputs, in)
		offset += n
	}
	return inputs, offset, nil
}

// AppendTxIn appends the wire encoding of in to dst.
func AppendTxIn(dst []byte, in TxIn) []byte {
	dst = append(dst, in.PreviousOutPoint.Hash[:]...)

	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], in.PreviousOutPoint.Index)
	dst = append(dst, idx[:]...)

	dst = append(dst, compactsize.Encode(uint64(len(in.SignatureScript)))...)
	dst = append(dst, in.SignatureScript...)

	var seq [4]byte
	binary.LittleEndian.PutUint32(seq[:], in.Sequence)
	return append(dst, seq[:]...)
}

// WriteTxIns encodes the input vector: compact-size count followed by
// each input, in input order.
func WriteTxIns(inputs []TxIn) []byte {
	buf := compactsize.Encode(uint64(len(inputs)))
	for _, in := range inputs {
		buf = AppendTxIn(buf, in)
	}
	return buf
}
