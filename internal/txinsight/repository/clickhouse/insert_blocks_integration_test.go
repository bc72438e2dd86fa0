package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

func (s *RepositorySuite) TestInsertBlocks() {
	now := time.Now().UTC().Truncate(time.Second)
	blocks := []model.Block{
		newTestBlock(model.BlockProcessed, 0, "a", now),
		newTestBlock(model.BlockProcessed, 1, "b", now.Add(time.Second)),
	}

	s.metrics.EXPECT().Observe("insert_blocks", model.BTC, model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, blocks))
	s.Equal(uint64(len(blocks)), s.countRows("txinsight_blocks"))
}

func (s *RepositorySuite) TestInsertBlocksEmptySlice() {
	s.metrics.EXPECT().Observe("insert_blocks", model.Coin(""), model.Network(""), gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, nil))
	s.Equal(uint64(0), s.countRows("txinsight_blocks"))
}
