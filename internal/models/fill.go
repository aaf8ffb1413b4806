package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fill is one on-chain settlement of (part of) an order.
type Fill struct {
	TxHash       string    `json:"tx_hash"`
	Taker        string    `json:"taker"`
	TakerAddress string    `json:"taker_address"`
	Timestamp    time.Time `json:"timestamp"`
	BlockNumber  uint64    `json:"block_number"`

	MakerToken           string          `json:"maker_token"`
	TakerToken           string          `json:"taker_token"`
	MakerAmountFilled    decimal.Decimal `json:"maker_amount_filled"`
	TakerAmountFilled    decimal.Decimal `json:"taker_amount_filled"`
	MakerAmountFilledUSD decimal.Decimal `json:"maker_amount_filled_usd"`
	TakerAmountFilledUSD decimal.Decimal `json:"taker_amount_filled_usd"`

	GasUsed    decimal.Decimal `json:"gas_used"`
	GasPrice   decimal.Decimal `json:"gas_price"`
	ETHPrice   decimal.Decimal `json:"eth_price"`
	GasCostUSD decimal.Decimal `json:"gas_cost_usd"`

	Links TxLinks `json:"links"`
}

type TxLinks struct {
	Etherscan string `json:"etherscan"`
	EigenPhi  string `json:"eigenphi"`
}
