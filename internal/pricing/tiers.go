package pricing

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Tier is an inclusive subtotal band mapped to a volume discount rate.
type Tier struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

func (t Tier) contains(total decimal.Decimal) bool {
	return total.GreaterThanOrEqual(t.Min) && total.LessThanOrEqual(t.Max)
}

// Tiers is an ordered volume discount table.
type Tiers []Tier

// NewTiers orders the table by ascending lower bound.
func NewTiers(tiers ...Tier) Tiers {
	out := slices.Clone(tiers)
	slices.SortStableFunc(out, func(a, b Tier) int { return a.Min.Cmp(b.Min) })
	return out
}

// Rate returns the rate of the first tier containing total, or zero.
func (ts Tiers) Rate(total decimal.Decimal) decimal.Decimal {
	for _, tier := range ts {
		if tier.contains(total) {
			return tier.Rate
		}
	}
	return decimal.Zero
}

func tier(lo, hi, rate string) Tier {
	return Tier{
		Min:  decimal.RequireFromString(lo),
		Max:  decimal.RequireFromString(hi),
		Rate: decimal.RequireFromString(rate),
	}
}

// VolumeTiers is the storefront's volume discount table.
var VolumeTiers = NewTiers(
	tier("0.00", "49.99", "0.00"),
	tier("50.00", "99.99", "0.05"),
	tier("100.00", "199.99", "0.10"),
	tier("200.00", "9999999.99", "0.15"),
)

// VolumeRate looks subtotal up in VolumeTiers.
func VolumeRate(subtotal decimal.Decimal) decimal.Decimal {
	return VolumeTiers.Rate(subtotal)
}
