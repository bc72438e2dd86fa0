package bitcoin

import (
	"context"
	"fmt"
	"math"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/chain"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
	"github.com/goodnatureofminers/txinsight7000-backend/pkg/safe"
)

// Source implements chain.Source for Bitcoin.
type Source struct {
	rpc       RPC
	converter TxConverter
	network   model.Network
}

// NewSource creates a Source for Bitcoin.
func NewSource(rpc RPC, converter TxConverter, network model.Network) (*Source, error) {
	return &Source{
		rpc:       rpc,
		converter: converter,
		network:   network,
	}, nil
}

// LatestHeight returns the latest block height from the node.
func (s *Source) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves and decodes the block at the given height.
func (s *Source) FetchBlock(ctx context.Context, height uint64) (*chain.DecodedBlock, error) {
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	block, err := BuildBlockFromVerbose(*src, s.network, model.BlockUnprocessed)
	if err != nil {
		return nil, err
	}

	txs := make([]model.Transaction, 0, len(src.Tx))
	inputs := make([]model.TransactionInput, 0)
	outputs := make([]model.TransactionOutput, 0)

	for _, tx := range src.Tx {
		row, txInputs, txOutputs, err := s.converter.Convert(tx, block.Height, block.Timestamp)
		if err != nil {
			return nil, err
		}
		txs = append(txs, row)
		inputs = append(inputs, txInputs...)
		outputs = append(outputs, txOutputs...)
	}

	return &chain.DecodedBlock{
		Block:   block,
		Txs:     txs,
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}
