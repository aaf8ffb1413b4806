package normalize

import (
	"fmt"
	"sort"

	"hidingbook/internal/client/rook"
	"hidingbook/internal/models"
)

var outcomeLabels = map[int]string{
	0: "Unfilled",
	1: "Filled",
	2: "Partially filled",
	3: "Failed",
	4: "Expired",
	5: "Filled outside valid range",
}

// OutcomePending labels a bid whose outcome has not been reported.
const OutcomePending = "Pending"

// OutcomeLabel maps a coordinator outcome code to its display label.
func OutcomeLabel(code int) string {
	if label, ok := outcomeLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("Unknown (%d)", code)
}

// Bids flattens every auction's bid list, resolving keeper names and sorting
// by auction creation block. Bids at the same block keep upstream order.
func Bids(auctions []rook.Auction, reg *models.Registry) []models.AuctionBid {
	out := []models.AuctionBid{}
	for _, a := range auctions {
		for _, b := range a.BidList {
			keeper := models.NormalizeAddress(b.KeeperIdentityAddress)
			var code *int
			label := OutcomePending
			if b.Outcome.OutcomeValue.Valid {
				c := int(b.Outcome.OutcomeValue.IntPart())
				code, label = &c, OutcomeLabel(c)
			}
			out = append(out, models.AuctionBid{
				Keeper:          reg.NameOr(keeper, keeper),
				KeeperAddress:   keeper,
				CreationBlock:   uintOf(a.AuctionCreationBlockNumber),
				SettlementBlock: uintOf(a.AuctionSettlementBlockNumber),
				DeadlineBlock:   uintOf(a.AuctionDeadlineBlockNumber),
				BidAmount:       b.RookEtherUnits.Decimal,
				ScoreBid:        b.ScoreBid.Decimal,
				ScoreRandom:     b.ScoreRandom.Decimal,
				ScoreFillAmount: b.ScoreTargetFillAmount.Decimal,
				ScoreReputation: b.ScoreReputation.Decimal,
				ScoreStake:      b.ScoreStake.Decimal,
				Score:           b.Score.Decimal,
				OutcomeCode:     code,
				Outcome:         label,
				OutcomeReceipt:  string(b.Outcome.OutcomeReceipt),
				OutcomeTxHash:   b.Outcome.TxHash,
				BatchCount:      int(b.Outcome.BatchCount.IntPart()),
				AuctionID:       string(b.AuctionID),
				BidID:           string(b.BidID),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreationBlock < out[j].CreationBlock
	})
	return out
}
