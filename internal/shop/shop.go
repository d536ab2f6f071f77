package shop

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/museum-cart/internal/cart"
	"github.com/angelmondragon/museum-cart/internal/catalog"
	"github.com/angelmondragon/museum-cart/pkg/logger"
	"github.com/angelmondragon/museum-cart/pkg/money"
)

// Badge is the quantity indicator next to a product control.
type Badge struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Text      string `json:"text"`
}

// BadgeFor reads the badge for id from c: "Qty: N", or empty when absent.
func BadgeFor(c cart.Cart, id string) Badge {
	qty := c.Quantity(id)
	b := Badge{ProductID: id, Quantity: qty}
	if qty > 0 {
		b.Text = "Qty: " + strconv.Itoa(qty)
	}
	return b
}

// Card is one product tile on the shop page.
type Card struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Price     string          `json:"price"`
	ImageRef  string          `json:"image"`
	Badge     Badge           `json:"badge"`
}

// Page is the shop view model.
type Page struct {
	Cards []Card `json:"cards"`
}

// IgnoreRecorder counts dropped activations.
type IgnoreRecorder interface {
	IncIgnoredActivation()
}

type nopRecorder struct{}

func (nopRecorder) IncIgnoredActivation() {}

// Service drives the shop page and its add-to-cart controls.
type Service interface {
	Activate(ctx context.Context, visitorID string, attrs ProductAttrs) (Badge, error)
	Page(ctx context.Context, visitorID string) (Page, error)
}

type service struct {
	carts    cart.Service
	products catalog.Lister
	logg     *logger.Logger
	recorder IgnoreRecorder
}

// NewService builds the shop view service.
func NewService(carts cart.Service, products catalog.Lister, logg *logger.Logger, recorder IgnoreRecorder) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if products == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &service{carts: carts, products: products, logg: logg, recorder: recorder}, nil
}

// Activate adds one unit of the product to the cart and returns its new badge.
// Invalid attributes are logged and ignored: the returned error wraps
// ErrInvalidProduct and the badge reflects the unchanged cart.
func (s *service) Activate(ctx context.Context, visitorID string, attrs ProductAttrs) (Badge, error) {
	ref, err := attrs.Ref()
	if err != nil {
		s.recorder.IncIgnoredActivation()
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"product_id": attrs.ID,
			"price":      attrs.UnitPrice,
			"error":      err.Error(),
		}), "shop.activation_ignored")
		return BadgeFor(s.carts.Read(ctx, visitorID), attrs.ID), err
	}

	next, err := s.carts.Add(ctx, visitorID, ref)
	if err != nil {
		return Badge{}, err
	}
	return BadgeFor(next, ref.ID), nil
}

// Page lists the catalog with badges reflecting the current cart.
func (s *service) Page(ctx context.Context, visitorID string) (Page, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return Page{}, err
	}
	current := s.carts.Read(ctx, visitorID)
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, Card{
			ID:        p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Price:     money.Format(p.UnitPrice),
			ImageRef:  p.ImageRef,
			Badge:     BadgeFor(current, p.ID),
		})
	}
	return Page{Cards: cards}, nil
}

// IsIgnored reports whether err came from a dropped activation.
func IsIgnored(err error) bool {
	return errors.Is(err, ErrInvalidProduct)
}
