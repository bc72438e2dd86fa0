package ingester

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
	"github.com/goodnatureofminers/txinsight7000-backend/pkg/workerpool"
	"go.uber.org/zap"
)

type blockProcessor struct {
	workerCount int
	source      Source
	blockWriter BlockWriter
	metrics     Metrics
	logger      *zap.Logger
	cancel      func()
}

func (p *blockProcessor) SetCancel(cancel func()) {
	p.cancel = cancel
}

func (p *blockProcessor) Process(ctx context.Context, heights []uint64) error {
	return workerpool.Process(ctx, p.workerCount, heights, p.processHeight, p.cancel)
}

func (p *blockProcessor) processHeight(ctx context.Context, height uint64) (err error) {
	started := time.Now()
	defer func() {
		p.observeHeight(err, height, started)
	}()

	block, err := p.source.FetchBlock(ctx, height)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("fetch block failed", zap.Uint64("height", height), zap.Error(err))
		}
		return fmt.Errorf("fetch block height %d: %w", height, err)
	}

	err = p.blockWriter.WriteBlock(ctx, model.InsertBlock{
		Block:   block.Block,
		Txs:     block.Txs,
		Inputs:  block.Inputs,
		Outputs: block.Outputs,
	})
	if err != nil {
		if p.logger != nil {
			p.logger.Error("write block failed", zap.Uint64("height", height), zap.Error(err))
		}
		return fmt.Errorf("write block height %d: %w", height, err)
	}
	return nil
}

func (p *blockProcessor) observeHeight(err error, height uint64, started time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.ObserveProcessHeight(err, height, started)
}
