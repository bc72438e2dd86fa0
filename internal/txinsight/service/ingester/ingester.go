package ingester

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/clock"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
	"go.uber.org/zap"
)

// Service orchestrates follower ingestion: discover new heights, decode
// and classify their blocks, persist the rows.
type Service struct {
	logger            *zap.Logger
	coin              model.Coin
	network           model.Network
	metrics           Metrics
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	longSleepDuration time.Duration
	heightFetcher     HeightFetcher
	blockProcessor    BlockProcessor
	blockWriter       BlockWriter
}

// New builds a Service with the given dependencies.
func New(
	repo ClickhouseRepository,
	source Source,
	metrics Metrics,
	coin model.Coin,
	network model.Network,
	startHeight uint64,
	logger *zap.Logger,
) (*Service, error) {
	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)
	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}

	bw := newBlockWriter(repo, logger)

	return &Service{
		logger:            logger,
		coin:              coin,
		network:           network,
		metrics:           metrics,
		sleep:             clock.SleepWithContext,
		sleepDuration:     sleepDuration,
		longSleepDuration: longSleepDuration,
		heightFetcher: &followerHeightFetcher{
			source:      source,
			repository:  repo,
			coin:        coin,
			network:     network,
			startHeight: startHeight,
			limit:       heightBatchLimit,
		},
		blockWriter: bw,
		blockProcessor: &blockProcessor{
			workerCount: defaultWorkerCount,
			source:      source,
			blockWriter: bw,
			metrics:     metrics,
			logger:      logger.Named("blockProcessor"),
		},
	}, nil
}

// Run starts the ingestion loop until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	bwCtx, bwCancel := context.WithCancel(ctx)
	s.blockProcessor.SetCancel(bwCancel)

	s.blockWriter.Start(bwCtx)
	defer func() {
		bwCancel()
		s.blockWriter.Stop()
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.sleepDuration))
			if sleepErr := s.sleep(ctx, s.sleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *Service) run(ctx context.Context) error {
	started := time.Now()
	heights, err := s.heightFetcher.Fetch(ctx)
	s.metrics.ObserveFetchHeights(err, started)
	if err != nil {
		s.logger.Error("fetch heights failed", zap.Error(err))
		return err
	}

	if len(heights) == 0 {
		s.logger.Debug("no new heights; sleeping", zap.Duration("sleep", s.longSleepDuration))
		return s.sleep(ctx, s.longSleepDuration)
	}

	s.logger.Info("processing batch", zap.Int("heights", len(heights)))
	started = time.Now()
	if err = s.blockProcessor.Process(ctx, heights); err != nil {
		s.metrics.ObserveProcessBatch(err, len(heights), started)
		s.logger.Error("process batch failed", zap.Int("heights", len(heights)), zap.Error(err))
		return err
	}
	s.metrics.ObserveProcessBatch(nil, len(heights), started)

	return s.sleep(ctx, s.sleepDuration)
}
