package cartview

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/museum-cart/internal/cart"
	"github.com/angelmondragon/museum-cart/internal/pricing"
	"github.com/angelmondragon/museum-cart/pkg/money"
)

// State is the cart page mode.
type State string

const (
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
)

// EmptyMessage is shown instead of the table and summary.
const EmptyMessage = "Your cart is empty."

// DiscountPrompt is shown when a member's subtotal also earns a volume discount.
const DiscountPrompt = "Only one discount may be applied. Choose Member or Volume."

// Row is one rendered cart line.
type Row struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageRef  string `json:"image"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Amount    string `json:"amount"`
}

// SummaryLine is a label/value pair in the invoice summary.
type SummaryLine struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Strong bool   `json:"strong,omitempty"`
}

// Page is the cart view model. Rows and Summary are nil in the empty state.
type Page struct {
	State          State                     `json:"state"`
	EmptyMessage   string                    `json:"empty_message,omitempty"`
	Rows           []Row                     `json:"rows,omitempty"`
	Summary        []SummaryLine             `json:"summary,omitempty"`
	Member         bool                      `json:"member"`
	DiscountChoice string                    `json:"discount_choice,omitempty"`
	ChoiceRequired bool                      `json:"choice_required"`
	ChoicePrompt   string                    `json:"choice_prompt,omitempty"`
	Invoice        *pricing.InvoiceBreakdown `json:"-"`
}

// Build renders a cart and UI state into a page. It reads nothing and is
// deterministic for equal inputs.
func Build(items cart.Cart, ui UIState) Page {
	valid := items.Valid()
	page := Page{
		Member:         ui.Member,
		DiscountChoice: ui.DiscountChoice,
	}
	if len(valid) == 0 {
		page.State = StateEmpty
		page.EmptyMessage = EmptyMessage
		return page
	}

	page.State = StatePopulated
	page.Rows = make([]Row, 0, len(valid))
	subtotal := decimal.Zero
	for _, it := range valid {
		amount := it.Amount()
		subtotal = subtotal.Add(amount)
		page.Rows = append(page.Rows, Row{
			ID:        it.ID,
			Name:      it.Name,
			ImageRef:  it.ImageRef,
			Quantity:  it.Quantity,
			UnitPrice: money.Format(it.UnitPrice),
			Amount:    money.Format(amount),
		})
	}

	discounts, invoice := pricing.Quote(subtotal, ui.Member, ui.Chooser())
	page.Invoice = &invoice
	page.ChoiceRequired = discounts.ChoiceRequired
	if discounts.ChoiceRequired {
		page.ChoicePrompt = DiscountPrompt
	}
	page.Summary = summarize(invoice)
	return page
}

func summarize(inv pricing.InvoiceBreakdown) []SummaryLine {
	return []SummaryLine{
		{Label: "Subtotal of Items", Value: money.Format(inv.ItemsSubtotal)},
		{Label: "Volume Discount", Value: money.Format(inv.VolumeDiscount.Neg())},
		{Label: "Member Discount", Value: money.Format(inv.MemberDiscount.Neg())},
		{Label: "Shipping", Value: money.Format(inv.Shipping)},
		{Label: "Subtotal (Taxable)", Value: money.Format(inv.TaxableAmount), Strong: true},
		{Label: "Tax Rate", Value: money.FormatRate(inv.TaxRate)},
		{Label: "Tax Amount", Value: money.Format(inv.TaxAmount)},
		{Label: "Invoice Total", Value: money.Format(inv.Total), Strong: true},
	}
}
