package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LineItem is one product entry in a visitor's cart.
type LineItem struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	ImageRef  string
}

// Amount is unitPrice x quantity.
func (it LineItem) Amount() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Valid reports whether the entry may take part in pricing.
func (it LineItem) Valid() bool {
	return it.ID != "" && it.UnitPrice.IsPositive() && it.Quantity > 0
}

// blob shape; unitPrice is written as a bare JSON number.
type storedItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice json.RawMessage `json:"unitPrice"`
	Quantity  int             `json:"qty"`
	ImageRef  string          `json:"image"`
}

func (it LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(storedItem{
		ID:        it.ID,
		Name:      it.Name,
		UnitPrice: json.RawMessage(it.UnitPrice.String()),
		Quantity:  it.Quantity,
		ImageRef:  it.ImageRef,
	})
}

func (it *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		UnitPrice decimal.Decimal `json:"unitPrice"`
		Quantity  int             `json:"qty"`
		ImageRef  string          `json:"image"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*it = LineItem{
		ID:        raw.ID,
		Name:      raw.Name,
		UnitPrice: raw.UnitPrice,
		Quantity:  raw.Quantity,
		ImageRef:  raw.ImageRef,
	}
	return nil
}

// ProductRef is what a product control carries into the cart.
type ProductRef struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
}
