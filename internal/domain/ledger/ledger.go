// Package ledger derives philanthropist levels from cumulative donations and
// applies confirmed credits to a donor standing.
package ledger

import (
	"math"
	"strconv"
	"time"

	domainErrors "github.com/polkiloo/topdonators/internal/domain/errors"
	"github.com/polkiloo/topdonators/internal/domain/model"
)

// Thresholds is one cycle of the tier ladder. The last entry closes the cycle.
var Thresholds = [...]int64{50, 90, 150, 250, 350, 450, 550, 650, 750, 850}

// CycleSize is the amount that completes one pass through Thresholds.
const CycleSize = 850

// TierZero is the level of a donor who has not donated yet.
const TierZero = "F0"

const (
	basePrefix  = "F"
	elitePrefix = "Elite-"
)

// DeriveLevel maps a cumulative amount onto its tier label.
//
// The first cycle yields F0..F9. Every completed cycle after that continues in
// the Elite family, ten labels per cycle: 850 is Elite-0, 1700 is Elite-10.
func DeriveLevel(amount int64) string {
	if amount < 0 {
		amount = 0
	}
	cycles := amount / CycleSize
	remainder := amount % CycleSize

	level := int64(0)
	for _, threshold := range Thresholds {
		if remainder < threshold {
			break
		}
		level++
	}

	if cycles == 0 {
		return basePrefix + strconv.FormatInt(level, 10)
	}
	return elitePrefix + strconv.FormatInt(level+(cycles-1)*int64(len(Thresholds)), 10)
}

// Credit adds amount to the standing and recomputes the level.
func Credit(current model.Standing, amount int64, now time.Time) (model.Standing, error) {
	if amount <= 0 {
		return current, domainErrors.ErrInvalidAmount
	}
	if current.Amount > math.MaxInt64-amount {
		return current, domainErrors.ErrInvalidAmount
	}

	total := current.Amount + amount
	at := now.UTC()
	return model.Standing{
		Amount:         total,
		Level:          DeriveLevel(total),
		LastDonationAt: &at,
	}, nil
}
