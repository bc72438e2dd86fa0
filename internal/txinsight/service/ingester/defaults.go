package ingester

import "time"

const (
	defaultWorkerCount = 20

	heightBatchLimit = 2000

	transactionFlushThreshold = 1000
	inputFlushThreshold       = 10_000
	outputFlushThreshold      = 10_000

	sleepDuration     = 5 * time.Second
	longSleepDuration = 1 * time.Minute

	blockBatcherCapacity      = 500
	blockBatcherFlushInterval = 5 * time.Second
	blockBatcherRPS           = 20
)
