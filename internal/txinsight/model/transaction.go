package model

import "time"

// Transaction represents a decoded transaction with classification
// metadata.
type Transaction struct {
	Coin        Coin
	Network     Network
	TxID        string
	BlockHeight uint64
	Timestamp   time.Time
	Size        uint32
	Version     uint32
	LockTime    uint32
	InputCount  uint32
	OutputCount uint32
	IsCoinbase  bool
}

// TransactionInput describes an input together with its classified script
// signature.
type TransactionInput struct {
	Coin           Coin
	Network        Network
	BlockHeight    uint64
	TxID           string
	Index          uint32
	PrevTxID       string
	PrevVout       uint32
	Sequence       uint32
	IsCoinbase     bool
	ScriptSigHex   string
	ScriptSigAsm   string
	ScriptSigKind  string
	SignatureCount uint32
}

// TransactionOutput represents an output produced by a transaction.
type TransactionOutput struct {
	Coin        Coin
	Network     Network
	BlockHeight uint64
	TxID        string
	Index       uint32
	Value       uint64
	ScriptType  string
	ScriptHex   string
}
