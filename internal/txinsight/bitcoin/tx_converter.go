// Package bitcoin implements the Bitcoin-facing side of ingestion:
// fetching blocks over RPC and decoding their transactions with the
// in-repo wire codec and script-signature classifier.
package bitcoin

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/script"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/scriptsig"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/ledger/wire"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
	"github.com/goodnatureofminers/txinsight7000-backend/pkg/safe"
)

// txConverter decodes raw transaction hex and classifies every script.
type txConverter struct {
	network model.Network
}

// NewTxConverter constructs a converter for the given network.
func NewTxConverter(network model.Network) TxConverter {
	return &txConverter{network: network}
}

// Convert decodes the raw hex of an RPC transaction result into row
// models. The node-reported txid must match the one derived from the
// decoded bytes; a mismatch means the serialization is not the legacy
// layout this codec understands.
func (c *txConverter) Convert(tx btcjson.TxRawResult, blockHeight uint64, blockTime time.Time) (model.Transaction, []model.TransactionInput, []model.TransactionOutput, error) {
	raw, err := hex.DecodeString(tx.Hex)
	if err != nil {
		return model.Transaction{}, nil, nil, fmt.Errorf("tx %s hex: %w", tx.Txid, err)
	}

	decoded, consumed, err := wire.ParseTx(raw)
	if err != nil {
		return model.Transaction{}, nil, nil, fmt.Errorf("tx %s decode: %w", tx.Txid, err)
	}
	if consumed != len(raw) {
		return model.Transaction{}, nil, nil, fmt.Errorf("tx %s decode: %d trailing bytes", tx.Txid, len(raw)-consumed)
	}
	if txid := decoded.TxID().String(); txid != tx.Txid {
		return model.Transaction{}, nil, nil, fmt.Errorf("tx %s decode: derived txid %s differs, unsupported serialization", tx.Txid, txid)
	}

	size, err := safe.Uint32(len(raw))
	if err != nil {
		return model.Transaction{}, nil, nil, fmt.Errorf("tx %s size overflow: %w", tx.Txid, err)
	}
	inputCount, err := safe.Uint32(decoded.NumInputs())
	if err != nil {
		return model.Transaction{}, nil, nil, fmt.Errorf("tx %s input count overflow: %w", tx.Txid, err)
	}
	outputCount, err := safe.Uint32(decoded.NumOutputs())
	if err != nil {
		return model.Transaction{}, nil, nil, fmt.Errorf("tx %s output count overflow: %w", tx.Txid, err)
	}

	row := model.Transaction{
		Coin:        model.BTC,
		Network:     c.network,
		TxID:        tx.Txid,
		BlockHeight: blockHeight,
		Timestamp:   blockTime,
		Size:        size,
		Version:     decoded.Version(),
		LockTime:    decoded.LockTime(),
		InputCount:  inputCount,
		OutputCount: outputCount,
		IsCoinbase:  decoded.IsCoinbase(),
	}

	inputs, err := c.convertInputs(decoded, tx.Txid, blockHeight)
	if err != nil {
		return model.Transaction{}, nil, nil, err
	}
	outputs, err := c.convertOutputs(decoded, tx.Txid, blockHeight)
	if err != nil {
		return model.Transaction{}, nil, nil, err
	}

	return row, inputs, outputs, nil
}

func (c *txConverter) convertInputs(tx *wire.Tx, txid string, blockHeight uint64) ([]model.TransactionInput, error) {
	inputs := make([]model.TransactionInput, 0, tx.NumInputs())
	for idx, in := range tx.Inputs() {
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s input index overflow: %w", txid, err)
		}

		sig := scriptsig.ClassifyBytes(in.SignatureScript)
		sigCount, err := safe.Uint32(len(sig.Signatures()))
		if err != nil {
			return nil, fmt.Errorf("tx %s input %d signature count overflow: %w", txid, idx, err)
		}

		inputs = append(inputs, model.TransactionInput{
			Coin:           model.BTC,
			Network:        c.network,
			BlockHeight:    blockHeight,
			TxID:           txid,
			Index:          index,
			PrevTxID:       in.PreviousOutPoint.Hash.String(),
			PrevVout:       in.PreviousOutPoint.Index,
			Sequence:       in.Sequence,
			IsCoinbase:     in.IsCoinbase(),
			ScriptSigHex:   sig.Hex(),
			ScriptSigAsm:   sig.String(),
			ScriptSigKind:  sig.Kind().String(),
			SignatureCount: sigCount,
		})
	}
	return inputs, nil
}

func (c *txConverter) convertOutputs(tx *wire.Tx, txid string, blockHeight uint64) ([]model.TransactionOutput, error) {
	outputs := make([]model.TransactionOutput, 0, tx.NumOutputs())
	for idx, out := range tx.Outputs() {
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", txid, err)
		}
		value, err := safe.Uint64(int64(out.Value))
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d negative value: %w", txid, idx, err)
		}

		outputs = append(outputs, model.TransactionOutput{
			Coin:        model.BTC,
			Network:     c.network,
			BlockHeight: blockHeight,
			TxID:        txid,
			Index:       index,
			Value:       value,
			ScriptType:  script.Classify(out.PkScript).String(),
			ScriptHex:   hex.EncodeToString(out.PkScript),
		})
	}
	return outputs, nil
}
