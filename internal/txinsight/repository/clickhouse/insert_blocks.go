package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

// InsertBlocks stores block rows in ClickHouse.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", firstCoin(blocks), firstNetwork(blocks), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	const query = `
INSERT INTO txinsight_blocks (
	coin,
	network,
	height,
	hash,
	timestamp,
	version,
	size,
	tx_count,
	status
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			string(block.Coin),
			string(block.Network),
			block.Height,
			block.Hash,
			block.Timestamp,
			block.Version,
			block.Size,
			block.TXCount,
			string(block.Status),
		); err != nil {
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
