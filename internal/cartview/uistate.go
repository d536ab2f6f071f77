package cartview

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/angelmondragon/museum-cart/internal/cart"
	"github.com/angelmondragon/museum-cart/internal/pricing"
	pkgerrors "github.com/angelmondragon/museum-cart/pkg/errors"
)

// UIState holds the cart page controls: the member toggle and the answer to
// the one-discount-only question.
type UIState struct {
	Member         bool   `json:"member"`
	DiscountChoice string `json:"discountChoice,omitempty"`
}

// Chooser answers the discount question from the stored choice.
func (u UIState) Chooser() pricing.Chooser {
	return pricing.Answer(u.DiscountChoice)
}

// NormalizeChoice maps user input onto "M", "V" or "".
func NormalizeChoice(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case pricing.ChooseMember:
		return pricing.ChooseMember
	case pricing.ChooseVolume:
		return pricing.ChooseVolume
	default:
		return ""
	}
}

// BlobStore is the cart blob contract plus key removal, used to drop UI state.
type BlobStore interface {
	cart.BlobStore
	Del(ctx context.Context, keys ...string) error
}

type uiStore struct {
	blobs BlobStore
	keys  cart.Keyspace
	ttl   time.Duration
}

// load falls back to the zero state on any read or decode problem.
func (s uiStore) load(ctx context.Context, visitorID string) UIState {
	blob, found, err := s.blobs.Lookup(ctx, s.keys.UIState(visitorID))
	if err != nil || !found {
		return UIState{}
	}
	var state UIState
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return UIState{}
	}
	state.DiscountChoice = NormalizeChoice(state.DiscountChoice)
	return state
}

func (s uiStore) save(ctx context.Context, visitorID string, state UIState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode ui state")
	}
	if err := s.blobs.Set(ctx, s.keys.UIState(visitorID), string(data), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist ui state")
	}
	return nil
}

// reset drops the stored state so the next load yields the zero state.
func (s uiStore) reset(ctx context.Context, visitorID string) error {
	if err := s.blobs.Del(ctx, s.keys.UIState(visitorID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset ui state")
	}
	return nil
}
