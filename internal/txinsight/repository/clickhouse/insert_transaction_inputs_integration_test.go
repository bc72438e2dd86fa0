package clickhouse

import (
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

func (s *RepositorySuite) TestInsertTransactionInputs() {
	inputs := []model.TransactionInput{
		{
			Coin:           model.BTC,
			Network:        model.Mainnet,
			BlockHeight:    1,
			TxID:           "txa",
			Index:          0,
			PrevTxID:       "0000000000000000000000000000000000000000000000000000000000000000",
			PrevVout:       0xffffffff,
			Sequence:       0xffffffff,
			IsCoinbase:     true,
			ScriptSigHex:   "04deadbeef",
			ScriptSigAsm:   "OP_DATA_4 deadbeef",
			ScriptSigKind:  "pubkey",
			SignatureCount: 1,
		},
		{
			Coin:           model.BTC,
			Network:        model.Mainnet,
			BlockHeight:    1,
			TxID:           "txb",
			Index:          0,
			PrevTxID:       "txa",
			PrevVout:       0,
			Sequence:       0xffffffff,
			ScriptSigKind:  "pubkeyhash",
			SignatureCount: 1,
		},
	}

	s.metrics.EXPECT().Observe("insert_transaction_inputs", model.BTC, model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactionInputs(s.testCtx, inputs))
	s.Equal(uint64(len(inputs)), s.countRows("txinsight_transaction_inputs"))
}

func (s *RepositorySuite) TestInputKindCounts() {
	inputs := []model.TransactionInput{
		{Coin: model.BTC, Network: model.Mainnet, BlockHeight: 1, TxID: "txa", Index: 0, ScriptSigKind: "pubkeyhash"},
		{Coin: model.BTC, Network: model.Mainnet, BlockHeight: 1, TxID: "txb", Index: 0, ScriptSigKind: "pubkeyhash"},
		{Coin: model.BTC, Network: model.Mainnet, BlockHeight: 2, TxID: "txc", Index: 0, ScriptSigKind: "scripthash"},
	}

	s.metrics.EXPECT().Observe("insert_transaction_inputs", model.BTC, model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("input_kind_counts", model.BTC, model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactionInputs(s.testCtx, inputs))

	counts, err := s.repo.InputKindCounts(s.testCtx, model.BTC, model.Mainnet)
	s.Require().NoError(err)
	s.Equal(map[string]uint64{
		"pubkeyhash": 2,
		"scripthash": 1,
	}, counts)
}
