package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/museum-cart/internal/cart"
	"github.com/angelmondragon/museum-cart/internal/cartview"
	"github.com/angelmondragon/museum-cart/internal/shop"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	return r
}

func TestShopPageRendersCardsAndBadges(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	page := shop.Page{Cards: []shop.Card{{
		ID:        "mug",
		Name:      "Water Lilies Mug",
		UnitPrice: decimal.RequireFromString("14.5"),
		Price:     "$14.50",
		ImageRef:  "images/mug.jpg",
		Badge:     shop.Badge{ProductID: "mug", Quantity: 2, Text: "Qty: 2"},
	}}}
	if err := r.Shop(w, page); err != nil {
		t.Fatalf("render: %v", err)
	}

	body := w.Body.String()
	for _, want := range []string{"Water Lilies Mug", "$14.50", `name="price" value="14.5"`, "Qty: 2", `action="/shop/items"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in shop page", want)
		}
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestCartPageEmptyStateHidesTable(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	if err := r.Cart(w, cartview.Build(nil, cartview.UIState{})); err != nil {
		t.Fatalf("render: %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, cartview.EmptyMessage) {
		t.Fatal("expected empty message")
	}
	if strings.Contains(body, "cartTable") || strings.Contains(body, "summary-table") {
		t.Fatal("table and summary must not render for an empty cart")
	}
}

func TestCartPagePopulatedShowsSummaryAndChoice(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	items := cart.Cart{{ID: "print", Name: "Print", UnitPrice: decimal.RequireFromString("60"), Quantity: 1, ImageRef: "p.jpg"}}
	page := cartview.Build(items, cartview.UIState{Member: true})
	if err := r.Cart(w, page); err != nil {
		t.Fatalf("render: %v", err)
	}

	body := w.Body.String()
	for _, want := range []string{
		"/cart/items/print/remove",
		"Invoice Total",
		"Subtotal (Taxable)",
		"10.2%",
		"($3.00)",
		cartview.DiscountPrompt,
		"checked",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in cart page", want)
		}
	}
}

func TestCartPageEscapesRemoveTarget(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	items := cart.Cart{{ID: "poster/a b", Name: "Poster", UnitPrice: decimal.RequireFromString("5"), Quantity: 1, ImageRef: "p.jpg"}}
	if err := r.Cart(w, cartview.Build(items, cartview.UIState{})); err != nil {
		t.Fatalf("render: %v", err)
	}
	if body := w.Body.String(); !strings.Contains(body, "/cart/items/poster%2Fa%20b/remove") {
		t.Fatalf("expected escaped remove action, got %s", body)
	}
}

func TestStaticServesStylesheet(t *testing.T) {
	w := httptest.NewRecorder()
	Static().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/shop.css", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
