package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raincoat98/lumina/internal/cart"
)

func newTestRepo(t *testing.T) (*Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRepository(client, 168*time.Hour, logger), mr
}

func testSnapshot(sessionID string) *cart.Snapshot {
	return &cart.Snapshot{
		Version:   cart.SnapshotVersion,
		Origin:    "origin-1",
		SessionID: sessionID,
		Items: []cart.Item{
			{ProductID: "p1", Size: "M", Color: "Black", Name: "Tee", Price: 29000, Quantity: 2},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSnapshot("s1")))

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.SessionID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(29000), got.Items[0].Price)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestLoad_MissingSession(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoad_CorruptRecordTreatedAsAbsent(t *testing.T) {
	repo, mr := newTestRepo(t)
	require.NoError(t, mr.Set("lumina:cart:v1:s1", "{not json"))

	got, err := repo.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSave_AppliesTTL(t *testing.T) {
	repo, mr := newTestRepo(t)
	require.NoError(t, repo.Save(context.Background(), testSnapshot("s1")))

	ttl := mr.TTL("lumina:cart:v1:s1")
	assert.Equal(t, 168*time.Hour, ttl)
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSnapshot("s1")))
	require.NoError(t, repo.Delete(ctx, "s1"))

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWatch_DeliversPublishedSnapshots(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := repo.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, testSnapshot("s1")))

	select {
	case snap := <-ch:
		require.NotNil(t, snap)
		assert.Equal(t, "s1", snap.SessionID)
		assert.Equal(t, "origin-1", snap.Origin)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cart sync message")
	}
}

func TestWatch_DropsUnparseablePayloads(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := repo.Watch(ctx)
	require.NoError(t, err)

	mr.Publish("lumina:cart:v1:sync", "{garbage")
	require.NoError(t, repo.Save(ctx, testSnapshot("s2")))

	select {
	case snap := <-ch:
		// The garbage payload never arrives; the next valid one does.
		require.NotNil(t, snap)
		assert.Equal(t, "s2", snap.SessionID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cart sync message")
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := repo.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

func TestPing(t *testing.T) {
	repo, mr := newTestRepo(t)
	require.NoError(t, repo.Ping(context.Background()))

	mr.Close()
	assert.Error(t, repo.Ping(context.Background()))
}
