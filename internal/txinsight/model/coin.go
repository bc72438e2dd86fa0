package model

type Coin string
type Network string

var (
	BTC Coin = "BTC"
)

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
	Regtest Network = "regtest"
)
