package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/museum-cart/pkg/errors"
	"github.com/angelmondragon/museum-cart/pkg/logger"
)

// DefaultKeyPrefix names the cart slot; existing blobs live under it.
const DefaultKeyPrefix = "museumCartV1"

// Mutation labels reported to the Recorder.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpClear  = "clear"
	OpWrite  = "write"
)

// BlobStore is the persisted string slot the cart lives in.
type BlobStore interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Recorder observes cart activity.
type Recorder interface {
	IncMutation(op string)
	IncDecodeFailure()
}

type nopRecorder struct{}

func (nopRecorder) IncMutation(string) {}
func (nopRecorder) IncDecodeFailure()  {}

// Keyspace derives per-visitor slot keys.
type Keyspace struct {
	Prefix string
}

// Cart returns the cart slot key for a visitor.
func (k Keyspace) Cart(visitorID string) string {
	return k.prefix() + ":" + visitorID
}

// UIState returns the key for the visitor's member toggle and discount choice.
func (k Keyspace) UIState(visitorID string) string {
	return k.prefix() + ":ui:" + visitorID
}

func (k Keyspace) prefix() string {
	if p := strings.TrimSpace(k.Prefix); p != "" {
		return p
	}
	return DefaultKeyPrefix
}

// Options tunes slot naming and retention.
type Options struct {
	KeyPrefix string
	TTL       time.Duration
}

// Service reads and mutates one visitor's cart slot. Every call re-reads the
// slot; concurrent writers for the same visitor are last-write-wins.
type Service interface {
	Read(ctx context.Context, visitorID string) Cart
	Write(ctx context.Context, visitorID string, c Cart) error
	Add(ctx context.Context, visitorID string, ref ProductRef) (Cart, error)
	RemoveByID(ctx context.Context, visitorID, id string) (Cart, error)
	Clear(ctx context.Context, visitorID string) error
	Keys() Keyspace
}

type service struct {
	blobs    BlobStore
	keys     Keyspace
	ttl      time.Duration
	logg     *logger.Logger
	recorder Recorder
}

// NewService builds a cart service backed by the provided blob store.
func NewService(blobs BlobStore, opts Options, logg *logger.Logger, recorder Recorder) (Service, error) {
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
		blobs:    blobs,
		keys:     Keyspace{Prefix: opts.KeyPrefix},
		ttl:      opts.TTL,
		logg:     logg,
		recorder: recorder,
	}, nil
}

func (s *service) Keys() Keyspace {
	return s.keys
}

// Read never fails: a missing slot, an unreadable backend or a malformed blob
// all yield an empty cart.
func (s *service) Read(ctx context.Context, visitorID string) Cart {
	key := s.keys.Cart(visitorID)
	blob, found, err := s.blobs.Lookup(ctx, key)
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "key", key), "cart.read_failed", err)
		return Cart{}
	}
	if !found {
		return Cart{}
	}
	c, err := Decode(blob)
	if err != nil {
		s.recorder.IncDecodeFailure()
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"key":   key,
			"error": err.Error(),
		}), "cart.decode_failed")
		return Cart{}
	}
	return c
}

func (s *service) Write(ctx context.Context, visitorID string, c Cart) error {
	return s.write(ctx, visitorID, c, OpWrite)
}

func (s *service) Add(ctx context.Context, visitorID string, ref ProductRef) (Cart, error) {
	next := AddOrIncrement(s.Read(ctx, visitorID), ref)
	if err := s.write(ctx, visitorID, next, OpAdd); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) RemoveByID(ctx context.Context, visitorID, id string) (Cart, error) {
	next := RemoveByID(s.Read(ctx, visitorID), id)
	if err := s.write(ctx, visitorID, next, OpRemove); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) Clear(ctx context.Context, visitorID string) error {
	return s.write(ctx, visitorID, Cart{}, OpClear)
}

func (s *service) write(ctx context.Context, visitorID string, c Cart, op string) error {
	if strings.TrimSpace(visitorID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "visitor id is required")
	}
	blob, err := Encode(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.blobs.Set(ctx, s.keys.Cart(visitorID), blob, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	s.recorder.IncMutation(op)
	return nil
}
