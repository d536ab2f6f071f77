package cartview

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/museum-cart/internal/cart"
	"github.com/angelmondragon/museum-cart/pkg/logger"
)

// RenderRecorder counts renders per resulting state.
type RenderRecorder interface {
	IncRender(state string)
}

type nopRecorder struct{}

func (nopRecorder) IncRender(string) {}

// Service renders the cart page and applies the page's actions. Every action
// persists its change and then re-renders from storage.
type Service interface {
	Render(ctx context.Context, visitorID string) Page
	Remove(ctx context.Context, visitorID, id string) (Page, error)
	Clear(ctx context.Context, visitorID string) (Page, error)
	SetMember(ctx context.Context, visitorID string, member bool) (Page, error)
	SetDiscountChoice(ctx context.Context, visitorID, choice string) (Page, error)
}

type service struct {
	carts    cart.Service
	ui       uiStore
	logg     *logger.Logger
	recorder RenderRecorder
}

// NewService builds the cart view. UI state shares the cart's blob store and
// keyspace.
func NewService(carts cart.Service, blobs BlobStore, ttl time.Duration, logg *logger.Logger, recorder RenderRecorder) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &service{
		carts:    carts,
		ui:       uiStore{blobs: blobs, keys: carts.Keys(), ttl: ttl},
		logg:     logg,
		recorder: recorder,
	}, nil
}

func (s *service) Render(ctx context.Context, visitorID string) Page {
	page := Build(s.carts.Read(ctx, visitorID), s.ui.load(ctx, visitorID))
	s.recorder.IncRender(string(page.State))
	return page
}

func (s *service) Remove(ctx context.Context, visitorID, id string) (Page, error) {
	if _, err := s.carts.RemoveByID(ctx, visitorID, id); err != nil {
		return Page{}, err
	}
	return s.Render(ctx, visitorID), nil
}

// Clear empties the cart and switches the member toggle off.
func (s *service) Clear(ctx context.Context, visitorID string) (Page, error) {
	if err := s.carts.Clear(ctx, visitorID); err != nil {
		return Page{}, err
	}
	if err := s.ui.reset(ctx, visitorID); err != nil {
		return Page{}, err
	}
	s.logg.Info(ctx, "cart.cleared")
	return s.Render(ctx, visitorID), nil
}

func (s *service) SetMember(ctx context.Context, visitorID string, member bool) (Page, error) {
	state := s.ui.load(ctx, visitorID)
	state.Member = member
	if err := s.ui.save(ctx, visitorID, state); err != nil {
		return Page{}, err
	}
	return s.Render(ctx, visitorID), nil
}

func (s *service) SetDiscountChoice(ctx context.Context, visitorID, choice string) (Page, error) {
	state := s.ui.load(ctx, visitorID)
	state.DiscountChoice = NormalizeChoice(choice)
	if err := s.ui.save(ctx, visitorID, state); err != nil {
		return Page{}, err
	}
	return s.Render(ctx, visitorID), nil
}
