package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

func (s *RepositorySuite) TestInsertTransactions() {
	now := time.Now().UTC().Truncate(time.Second)
	txs := []model.Transaction{
		{
			Coin:        model.BTC,
			Network:     model.Mainnet,
			TxID:        "txa",
			BlockHeight: 1,
			Timestamp:   now,
			Size:        225,
			Version:     1,
			LockTime:    0,
			InputCount:  1,
			OutputCount: 2,
			IsCoinbase:  true,
		},
		{
			Coin:        model.BTC,
			Network:     model.Mainnet,
			TxID:        "txb",
			BlockHeight: 1,
			Timestamp:   now,
			Size:        180,
			Version:     1,
			LockTime:    101,
			InputCount:  1,
			OutputCount: 1,
		},
	}

	s.metrics.EXPECT().Observe("insert_transactions", model.BTC, model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactions(s.testCtx, txs))
	s.Equal(uint64(len(txs)), s.countRows("txinsight_transactions"))
}
