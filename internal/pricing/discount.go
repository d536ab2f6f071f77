package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MemberRate is the flat membership discount.
var MemberRate = decimal.RequireFromString("0.15")

// Answers accepted by a Chooser.
const (
	ChooseMember = "M"
	ChooseVolume = "V"
)

// Chooser is asked which discount to keep when both member and volume apply.
// Any answer other than "M" (case-insensitive), including "", keeps volume.
type Chooser func() string

// Answer returns a Chooser that always replies with s.
func Answer(s string) Chooser {
	return func() string { return s }
}

// Discounts is the outcome of the discount policy. At most one amount is non-zero.
type Discounts struct {
	Member decimal.Decimal
	Volume decimal.Decimal
	// ChoiceRequired is set when the subtotal qualified for both discounts.
	ChoiceRequired bool
	// MemberChosen records the resolved answer when ChoiceRequired is set.
	MemberChosen bool
}

// SelectDiscount applies the member/volume exclusivity policy.
func SelectDiscount(subtotal decimal.Decimal, isMember bool, volumeRate decimal.Decimal, choose Chooser) Discounts {
	out := Discounts{
		Member: decimal.Zero,
		Volume: subtotal.Mul(volumeRate),
	}
	if !isMember {
		return out
	}
	if !volumeRate.IsPositive() {
		out.Member = subtotal.Mul(MemberRate)
		out.Volume = decimal.Zero
		return out
	}

	out.ChoiceRequired = true
	var answer string
	if choose != nil {
		answer = choose()
	}
	if strings.EqualFold(answer, ChooseMember) {
		out.Member = subtotal.Mul(MemberRate)
		out.Volume = decimal.Zero
		out.MemberChosen = true
	}
	return out
}
