package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

// InsertTransactionOutputs stores classified transaction outputs in ClickHouse.
func (r *Repository) InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transaction_outputs", firstCoin(outputs), firstNetwork(outputs), err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	const query = `
INSERT INTO txinsight_transaction_outputs (
	coin,
	network,
	block_height,
	txid,
	output_index,
	value,
	script_type,
	script_hex
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transaction outputs batch: %w", err)
	}

	for _, output := range outputs {
		if err = batch.Append(
			string(output.Coin),
			string(output.Network),
			output.BlockHeight,
			output.TxID,
			output.Index,
			output.Value,
			output.ScriptType,
			output.ScriptHex,
		); err != nil {
			return fmt.Errorf("append transaction output: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transaction outputs: %w", err)
	}
	return nil
}
