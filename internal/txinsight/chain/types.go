// Package chain defines the chain-facing contracts of the ingestion
// services.
package chain

import (
	"context"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

// Source provides fully decoded block data for ingestion.
type Source interface {
	LatestHeight(ctx context.Context) (uint64, error)
	FetchBlock(ctx context.Context, height uint64) (*DecodedBlock, error)
}

// DecodedBlock groups a block with its decoded transactions, classified
// inputs and outputs.
type DecodedBlock struct {
	Block   model.Block
	Txs     []model.Transaction
	Inputs  []model.TransactionInput
	Outputs []model.TransactionOutput
}
