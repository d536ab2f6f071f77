package cart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Cart is an ordered list of line items, unique by id, in first-added order.
type Cart []LineItem

// Find returns the entry with the given id.
func (c Cart) Find(id string) (LineItem, bool) {
	for _, it := range c {
		if it.ID == id {
			return it, true
		}
	}
	return LineItem{}, false
}

// Quantity returns the quantity held for id, or 0.
func (c Cart) Quantity(id string) int {
	if it, ok := c.Find(id); ok {
		return it.Quantity
	}
	return 0
}

// Valid drops entries that cannot be priced, keeping order.
func (c Cart) Valid() Cart {
	out := make(Cart, 0, len(c))
	for _, it := range c {
		if it.Valid() {
			out = append(out, it)
		}
	}
	return out
}

// AddOrIncrement bumps the quantity of ref.ID or appends it with quantity 1.
// The input cart is not modified.
func AddOrIncrement(c Cart, ref ProductRef) Cart {
	out := make(Cart, len(c), len(c)+1)
	copy(out, c)
	for i := range out {
		if out[i].ID == ref.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, LineItem{
		ID:        ref.ID,
		Name:      ref.Name,
		UnitPrice: ref.UnitPrice,
		Quantity:  1,
		ImageRef:  ref.ImageRef,
	})
}

// RemoveByID filters out the entry with id. Unknown ids leave the cart unchanged.
func RemoveByID(c Cart, id string) Cart {
	out := make(Cart, 0, len(c))
	for _, it := range c {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

var errNotArray = errors.New("cart blob is not a JSON array")

// Decode parses a stored blob. Elements that are not well-formed records are
// skipped; a blob that is not an array is an error.
func Decode(blob string) (Cart, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if raw == nil {
		// "null"
		return nil, errNotArray
	}
	out := make(Cart, 0, len(raw))
	for _, elem := range raw {
		var it LineItem
		if len(elem) == 0 || elem[0] != '{' {
			continue
		}
		if err := json.Unmarshal(elem, &it); err != nil {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// Encode serializes the full cart; an empty cart encodes as [].
func Encode(c Cart) (string, error) {
	if c == nil {
		c = Cart{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(data), nil
}
