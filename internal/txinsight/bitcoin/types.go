package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPC is the subset of node RPC calls the source needs. The raw
	// *rpcclient.Client satisfies it directly.
	RPC interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// TxConverter decodes a raw transaction and classifies its scripts.
	TxConverter interface {
		Convert(tx btcjson.TxRawResult, blockHeight uint64, blockTime time.Time) (model.Transaction, []model.TransactionInput, []model.TransactionOutput, error)
	}
)
