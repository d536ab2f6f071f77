package pricing

import "github.com/shopspring/decimal"

var (
	// TaxRate applies to the taxable amount (subtotal less discounts plus shipping).
	TaxRate = decimal.RequireFromString("0.102")
	// Shipping is a flat charge per order.
	Shipping = decimal.RequireFromString("25.00")
)

// InvoiceBreakdown is recomputed on every render and never stored.
type InvoiceBreakdown struct {
	ItemsSubtotal  decimal.Decimal
	VolumeDiscount decimal.Decimal
	MemberDiscount decimal.Decimal
	Shipping       decimal.Decimal
	TaxableAmount  decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// ComputeInvoice does not clamp: discounts larger than subtotal plus shipping
// produce a negative taxable amount, tax and total.
func ComputeInvoice(subtotal, memberDiscount, volumeDiscount, shipping, taxRate decimal.Decimal) InvoiceBreakdown {
	taxable := subtotal.Sub(volumeDiscount).Sub(memberDiscount).Add(shipping)
	tax := taxable.Mul(taxRate)
	return InvoiceBreakdown{
		ItemsSubtotal:  subtotal,
		VolumeDiscount: volumeDiscount,
		MemberDiscount: memberDiscount,
		Shipping:       shipping,
		TaxableAmount:  taxable,
		TaxRate:        taxRate,
		TaxAmount:      tax,
		Total:          taxable.Add(tax),
	}
}

// Quote runs rate lookup, discount selection and invoice arithmetic with the
// storefront constants.
func Quote(subtotal decimal.Decimal, isMember bool, choose Chooser) (Discounts, InvoiceBreakdown) {
	discounts := SelectDiscount(subtotal, isMember, VolumeRate(subtotal), choose)
	return discounts, ComputeInvoice(subtotal, discounts.Member, discounts.Volume, Shipping, TaxRate)
}
