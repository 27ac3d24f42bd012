package configcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/Batareeed/afterpay-go/configcache"
	"github.com/stretchr/testify/require"
)

// testStoreContract exercises the behavior every Store backend must share.
func testStoreContract(t *testing.T, store configcache.Store) {
	t.Helper()
	ctx := context.Background()

	// Normalize in case the backend carries state from an earlier run.
	require.NoError(t, store.SetConfiguration(ctx, nil))
	require.NoError(t, store.SetLastFetch(ctx, time.Time{}))

	raw, err := store.Configuration(ctx)
	require.NoError(t, err)
	require.Nil(t, raw, "an empty payload slot reads as nil")

	at, err := store.LastFetch(ctx)
	require.NoError(t, err)
	require.True(t, at.IsZero(), "an empty fetch-time slot reads as the zero time")

	payload := []byte(`{"maximumAmount":{"amount":"1000.00","currency":"AUD"}}`)
	require.NoError(t, store.SetConfiguration(ctx, payload))
	raw, err = store.Configuration(ctx)
	require.NoError(t, err)
	require.Equal(t, payload, raw)

	fetchedAt := time.Date(2023, time.June, 1, 12, 30, 45, 123456789, time.UTC)
	require.NoError(t, store.SetLastFetch(ctx, fetchedAt))
	at, err = store.LastFetch(ctx)
	require.NoError(t, err)
	require.True(t, at.Equal(fetchedAt), "fetch time survives the round trip, got %v want %v", at, fetchedAt)

	replacement := []byte(`{"maximumAmount":{"amount":"2000.00","currency":"NZD"}}`)
	require.NoError(t, store.SetConfiguration(ctx, replacement))
	raw, err = store.Configuration(ctx)
	require.NoError(t, err)
	require.Equal(t, replacement, raw)

	require.NoError(t, store.SetConfiguration(ctx, nil))
	raw, err = store.Configuration(ctx)
	require.NoError(t, err)
	require.Nil(t, raw)

	require.NoError(t, store.SetLastFetch(ctx, time.Time{}))
	at, err = store.LastFetch(ctx)
	require.NoError(t, err)
	require.True(t, at.IsZero())
}

func TestMemoryStoreContract(t *testing.T) {
	testStoreContract(t, configcache.NewMemoryStore())
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	ctx := context.Background()
	store := configcache.NewMemoryStore()

	payload := []byte(`{"a":1}`)
	require.NoError(t, store.SetConfiguration(ctx, payload))
	payload[0] = 'X'

	raw, err := store.Configuration(ctx)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(raw), "the store must not alias the caller's buffer")

	raw[0] = 'Y'
	again, err := store.Configuration(ctx)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(again))
}
