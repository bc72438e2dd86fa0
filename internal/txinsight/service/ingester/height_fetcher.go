package ingester

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

// followerHeightFetcher yields the next contiguous range of heights the
// repository has not seen yet, capped per iteration.
type followerHeightFetcher struct {
	source      Source
	repository  ClickhouseRepository
	coin        model.Coin
	network     model.Network
	startHeight uint64
	limit       uint64
}

func (f *followerHeightFetcher) Fetch(ctx context.Context) ([]uint64, error) {
	latest, err := f.source.LatestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest height: %w", err)
	}

	stored, err := f.repository.MaxBlockHeight(ctx, f.coin, f.network)
	if err != nil {
		return nil, fmt.Errorf("max stored height: %w", err)
	}

	// An empty table reports zero; ingestion begins at the configured
	// start height in that case.
	next := stored + 1
	if stored == 0 {
		next = f.startHeight
	}
	if next > latest {
		return nil, nil
	}

	end := latest
	if f.limit > 0 && end-next+1 > f.limit {
		end = next + f.limit - 1
	}

	heights := make([]uint64, 0, end-next+1)
	for h := next; h <= end; h++ {
		heights = append(heights, h)
	}
	return heights, nil
}
