// Package ingester follows a chain source and persists decoded,
// classified block data.
package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/chain"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	HeightFetcher interface {
		Fetch(ctx context.Context) ([]uint64, error)
	}
	BlockProcessor interface {
		Process(ctx context.Context, heights []uint64) error
		SetCancel(cancel func())
	}
	BlockWriter interface {
		Start(ctx context.Context)
		Stop()
		WriteBlock(ctx context.Context, b model.InsertBlock) error
	}
	Metrics interface {
		ObserveFetchHeights(err error, started time.Time)
		ObserveProcessBatch(err error, heights int, started time.Time)
		ObserveProcessHeight(err error, height uint64, started time.Time)
	}

	Source interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*chain.DecodedBlock, error)
	}
	ClickhouseRepository interface {
		MaxBlockHeight(ctx context.Context, coin model.Coin, network model.Network) (uint64, error)
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
		InsertTransactionInputs(ctx context.Context, inputs []model.TransactionInput) error
		InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error
	}
)
