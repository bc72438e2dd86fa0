package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
	"github.com/goodnatureofminers/txinsight7000-backend/pkg/safe"
)

// BuildBlockFromVerbose maps a btcjson verbose block result into a
// model.Block with the given status.
func BuildBlockFromVerbose(src btcjson.GetBlockVerboseTxResult, network model.Network, status model.BlockStatus) (model.Block, error) {
	timestamp := time.Unix(src.Time, 0).UTC()
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height %d overflow: %w", src.Height, err)
	}
	version, err := safe.Uint32(src.Version)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d version overflow: %w", src.Height, err)
	}
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d size overflow: %w", src.Height, err)
	}
	txCount, err := safe.Uint32(len(src.Tx))
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d tx count overflow: %w", src.Height, err)
	}

	return model.Block{
		Coin:      model.BTC,
		Network:   network,
		Height:    height,
		Hash:      src.Hash,
		Timestamp: timestamp,
		Version:   version,
		Size:      size,
		TXCount:   txCount,
		Status:    status,
	}, nil
}
