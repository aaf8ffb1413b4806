package models

import "github.com/shopspring/decimal"

// AuctionBid is one keeper's bid in the sealed-bid auction for an order.
type AuctionBid struct {
	Keeper        string `json:"keeper"`
	KeeperAddress string `json:"keeper_address"`

	CreationBlock   uint64 `json:"creation_block"`
	SettlementBlock uint64 `json:"settlement_block"`
	DeadlineBlock   uint64 `json:"deadline_block"`

	BidAmount       decimal.Decimal `json:"bid_amount"`
	ScoreBid        decimal.Decimal `json:"score_bid"`
	ScoreRandom     decimal.Decimal `json:"score_random"`
	ScoreFillAmount decimal.Decimal `json:"score_fill_amount"`
	ScoreReputation decimal.Decimal `json:"score_reputation"`
	ScoreStake      decimal.Decimal `json:"score_stake"`
	Score           decimal.Decimal `json:"score"`

	// OutcomeCode is nil while the coordinator has not reported an outcome.
	OutcomeCode    *int   `json:"outcome_code"`
	Outcome        string `json:"outcome"`
	OutcomeReceipt string `json:"outcome_receipt"`
	OutcomeTxHash  string `json:"outcome_tx_hash"`
	BatchCount     int    `json:"batch_count"`

	AuctionID string `json:"auction_id"`
	BidID     string `json:"bid_id"`
}
