package shop

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/museum-cart/internal/cart"
	"github.com/angelmondragon/museum-cart/pkg/money"
)

// ErrInvalidProduct marks an activation whose product attributes are missing
// or unusable. The activation is dropped without touching the cart.
var ErrInvalidProduct = errors.New("invalid product attributes")

// ProductAttrs are the attributes carried by an add-to-cart control.
type ProductAttrs struct {
	ID        string `json:"id" validate:"required,max=64"`
	Name      string `json:"name" validate:"required,max=255"`
	UnitPrice string `json:"price" validate:"required,positive_decimal"`
	ImageRef  string `json:"image" validate:"required,max=512"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		d, err := money.Parse(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	return v
}

func (a ProductAttrs) normalized() ProductAttrs {
	return ProductAttrs{
		ID:        strings.TrimSpace(a.ID),
		Name:      strings.TrimSpace(a.Name),
		UnitPrice: strings.TrimSpace(a.UnitPrice),
		ImageRef:  strings.TrimSpace(a.ImageRef),
	}
}

// Ref validates the attributes and converts them to a cart product reference.
func (a ProductAttrs) Ref() (cart.ProductRef, error) {
	n := a.normalized()
	if err := validate.Struct(n); err != nil {
		return cart.ProductRef{}, errors.Join(ErrInvalidProduct, err)
	}
	price, err := money.Parse(n.UnitPrice)
	if err != nil {
		return cart.ProductRef{}, errors.Join(ErrInvalidProduct, err)
	}
	return cart.ProductRef{
		ID:        n.ID,
		Name:      n.Name,
		UnitPrice: price,
		ImageRef:  n.ImageRef,
	}, nil
}
