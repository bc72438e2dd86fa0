package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

// InputKindCounts returns how many stored inputs carry each script
// signature kind for a coin/network.
func (r *Repository) InputKindCounts(ctx context.Context, coin model.Coin, network model.Network) (map[string]uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("input_kind_counts", coin, network, err, start)
	}()

	const query = `
SELECT script_sig_kind, count() AS total
FROM txinsight_transaction_inputs
WHERE coin = ? AND network = ?
GROUP BY script_sig_kind`

	rows, err := r.conn.Query(ctx, query, coin, network)
	if err != nil {
		return nil, fmt.Errorf("query input kind counts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	counts := make(map[string]uint64)
	for rows.Next() {
		var (
			kind  string
			total uint64
		)
		if err = rows.Scan(&kind, &total); err != nil {
			return nil, fmt.Errorf("scan input kind count: %w", err)
		}
		counts[kind] = total
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate input kind counts: %w", err)
	}

	return counts, nil
}
