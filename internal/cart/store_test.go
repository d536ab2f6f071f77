package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/museum-cart/pkg/errors"
	"github.com/angelmondragon/museum-cart/pkg/logger"
	"github.com/angelmondragon/museum-cart/pkg/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	mutations      map[string]int
	decodeFailures int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{mutations: map[string]int{}}
}

func (r *countingRecorder) IncMutation(op string) { r.mutations[op]++ }
func (r *countingRecorder) IncDecodeFailure()     { r.decodeFailures++ }

type failingBlobs struct {
	lookupErr error
	setErr    error
}

func (f failingBlobs) Lookup(context.Context, string) (string, bool, error) {
	return "", false, f.lookupErr
}

func (f failingBlobs) Set(context.Context, string, string, time.Duration) error {
	return f.setErr
}

func newTestService(t *testing.T) (Service, *memstore.Store, *countingRecorder) {
	t.Helper()
	blobs := memstore.New()
	rec := newCountingRecorder()
	svc, err := NewService(blobs, Options{TTL: time.Hour}, logger.Nop(), rec)
	require.NoError(t, err)
	return svc, blobs, rec
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil, Options{}, logger.Nop(), nil)
	require.Error(t, err)
	_, err = NewService(memstore.New(), Options{}, nil, nil)
	require.Error(t, err)

	svc, err := NewService(memstore.New(), Options{}, logger.Nop(), nil)
	require.NoError(t, err)
	assert.Equal(t, "museumCartV1:v1", svc.Keys().Cart("v1"))
	assert.Equal(t, "museumCartV1:ui:v1", svc.Keys().UIState("v1"))
}

func TestReadMissingSlotIsEmpty(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	assert.Empty(t, svc.Read(context.Background(), "visitor"))
}

func TestReadMalformedBlobIsEmptyAndCounted(t *testing.T) {
	t.Parallel()

	svc, blobs, rec := newTestService(t)
	ctx := context.Background()
	require.NoError(t, blobs.Set(ctx, svc.Keys().Cart("visitor"), "{not json", 0))

	assert.Empty(t, svc.Read(ctx, "visitor"))
	assert.Equal(t, 1, rec.decodeFailures)
}

func TestReadBackendErrorIsEmpty(t *testing.T) {
	t.Parallel()

	svc, err := NewService(failingBlobs{lookupErr: errors.New("down")}, Options{}, logger.Nop(), nil)
	require.NoError(t, err)
	assert.Empty(t, svc.Read(context.Background(), "visitor"))
}

func TestAddTwiceYieldsQuantityTwo(t *testing.T) {
	t.Parallel()

	svc, _, rec := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "visitor", ref("a", "10.00"))
	require.NoError(t, err)
	_, err = svc.Add(ctx, "visitor", ref("a", "10.00"))
	require.NoError(t, err)

	c := svc.Read(ctx, "visitor")
	require.Len(t, c, 1)
	assert.Equal(t, 2, c[0].Quantity)
	assert.Equal(t, 2, rec.mutations[OpAdd])
}

func TestRemoveUnknownLeavesCartUnchanged(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "visitor", ref("a", "10.00"))
	require.NoError(t, err)
	before := svc.Read(ctx, "visitor")

	after, err := svc.RemoveByID(ctx, "visitor", "missing")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, before, svc.Read(ctx, "visitor"))
}

func TestRemoveByIDDropsEntry(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, _ = svc.Add(ctx, "visitor", ref("a", "10.00"))
	_, _ = svc.Add(ctx, "visitor", ref("b", "4.00"))

	c, err := svc.RemoveByID(ctx, "visitor", "a")
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "b", svc.Read(ctx, "visitor")[0].ID)
}

func TestClearEmptiesSlot(t *testing.T) {
	t.Parallel()

	svc, blobs, _ := newTestService(t)
	ctx := context.Background()
	_, _ = svc.Add(ctx, "visitor", ref("a", "10.00"))

	require.NoError(t, svc.Clear(ctx, "visitor"))
	assert.Empty(t, svc.Read(ctx, "visitor"))

	blob, found, err := blobs.Lookup(ctx, svc.Keys().Cart("visitor"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "[]", blob)
}

func TestVisitorsAreIsolated(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, _ = svc.Add(ctx, "one", ref("a", "10.00"))

	assert.Empty(t, svc.Read(ctx, "two"))
	assert.Len(t, svc.Read(ctx, "one"), 1)
}

func TestWriteFailureIsDependencyError(t *testing.T) {
	t.Parallel()

	svc, err := NewService(failingBlobs{setErr: errors.New("down")}, Options{}, logger.Nop(), nil)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), "visitor", ref("a", "1"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestWriteRequiresVisitor(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	err := svc.Write(context.Background(), " ", Cart{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
