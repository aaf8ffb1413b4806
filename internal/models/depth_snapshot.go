package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DepthSnapshot archives the open order book's depth at one point in time.
type DepthSnapshot struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TakenAt       time.Time       `gorm:"type:timestamptz;not null;index" json:"taken_at"`
	OrderCount    int             `gorm:"not null" json:"order_count"`
	Dropped       int             `gorm:"not null;default:0" json:"dropped"`
	TotalMakerUSD decimal.Decimal `gorm:"type:numeric(38,10);not null" json:"total_maker_usd"`
	TotalTakerUSD decimal.Decimal `gorm:"type:numeric(38,10);not null" json:"total_taker_usd"`
	ByToken       datatypes.JSON  `gorm:"type:jsonb;not null" json:"by_token"`
	BySize        datatypes.JSON  `gorm:"type:jsonb;not null" json:"by_size"`
}

func (DepthSnapshot) TableName() string {
	return "depth_snapshots"
}
