package clickhouse

import (
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

func (s *RepositorySuite) TestInsertTransactionOutputs() {
	outputs := []model.TransactionOutput{
		{
			Coin:        model.BTC,
			Network:     model.Mainnet,
			BlockHeight: 1,
			TxID:        "txa",
			Index:       0,
			Value:       5_000_000_000,
			ScriptType:  "pubkeyhash",
			ScriptHex:   "76a914000000000000000000000000000000000000000088ac",
		},
		{
			Coin:        model.BTC,
			Network:     model.Mainnet,
			BlockHeight: 1,
			TxID:        "txa",
			Index:       1,
			Value:       0,
			ScriptType:  "nonstandard",
			ScriptHex:   "6a",
		},
	}

	s.metrics.EXPECT().Observe("insert_transaction_outputs", model.BTC, model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactionOutputs(s.testCtx, outputs))
	s.Equal(uint64(len(outputs)), s.countRows("txinsight_transaction_outputs"))
}
