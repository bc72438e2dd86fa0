package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

func (s *RepositorySuite) TestMaxBlockHeightEmptyTable() {
	s.metrics.EXPECT().Observe("max_block_height", model.BTC, model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	height, err := s.repo.MaxBlockHeight(s.testCtx, model.BTC, model.Mainnet)
	s.Require().NoError(err)
	s.Equal(uint64(0), height)
}

func (s *RepositorySuite) TestMaxBlockHeight() {
	now := time.Now().UTC().Truncate(time.Second)
	blocks := []model.Block{
		newTestBlock(model.BlockProcessed, 3, "a", now),
		newTestBlock(model.BlockProcessed, 9, "b", now),
		newTestBlock(model.BlockUnprocessed, 5, "c", now),
	}

	s.metrics.EXPECT().Observe("insert_blocks", model.BTC, model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("max_block_height", model.BTC, model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, blocks))

	height, err := s.repo.MaxBlockHeight(s.testCtx, model.BTC, model.Mainnet)
	s.Require().NoError(err)
	s.Equal(uint64(9), height)
}
