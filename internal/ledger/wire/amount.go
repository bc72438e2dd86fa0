package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// amountSize is the fixed encoded width of an output amount.
const amountSize = 8

// ReadAmount reads an 8-byte little-endian signed satoshi amount from the
// start of buf.
func ReadAmount(buf []byte) (btcutil.Amount, error) {
	if len(buf) < amountSize {
		return 0, fmt.Errorf("%w: amount needs %d bytes, have %d", ErrTruncated, amountSize, len(buf))
	}
	return btcutil.Amount(binary.LittleEndian.Uint64(buf)), nil
}

// AppendAmount appends the 8-byte little-endian encoding of amt to dst.
func AppendAmount(dst []byte, amt btcutil.Amount) []byte {
	var buf [amountSize]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(amt))
	return append(dst, buf[:]...)
}
