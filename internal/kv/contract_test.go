package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises behaviour every backend must share.
func runContract(t *testing.T, newNS func(t *testing.T) Namespace) {
	t.Run("absent key reads as version zero", func(t *testing.T) {
		ns := newNS(t)
		e, err := ns.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, e.Exists())
		assert.Equal(t, "missing", e.Key)
		assert.Nil(t, e.Value)
	})

	t.Run("create then update bumps version", func(t *testing.T) {
		ctx := context.Background()
		ns := newNS(t)
		require.NoError(t, ns.Commit(ctx, Write{Key: "products", Value: []byte(`[]`)}))

		e, err := ns.Get(ctx, "products")
		require.NoError(t, err)
		assert.Equal(t, int64(1), e.Version)
		assert.JSONEq(t, `[]`, string(e.Value))

		require.NoError(t, ns.Commit(ctx, Write{Key: "products", Value: []byte(`[{"id":1}]`), Version: e.Version}))
		e, err = ns.Get(ctx, "products")
		require.NoError(t, err)
		assert.Equal(t, int64(2), e.Version)
		assert.JSONEq(t, `[{"id":1}]`, string(e.Value))
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		ctx := context.Background()
		ns := newNS(t)
		require.NoError(t, ns.Commit(ctx, Write{Key: "cart", Value: []byte(`[]`)}))
		first, err := ns.Get(ctx, "cart")
		require.NoError(t, err)
		second, err := ns.Get(ctx, "cart")
		require.NoError(t, err)

		require.NoError(t, ns.Commit(ctx, Write{Key: "cart", Value: []byte(`[{"productId":1}]`), Version: first.Version}))
		err = ns.Commit(ctx, Write{Key: "cart", Value: []byte(`[{"productId":2}]`), Version: second.Version})
		assert.True(t, errors.Is(err, ErrConflict), "got %v", err)

		e, err := ns.Get(ctx, "cart")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"productId":1}]`, string(e.Value))
	})

	t.Run("batch is all or nothing", func(t *testing.T) {
		ctx := context.Background()
		ns := newNS(t)
		require.NoError(t, ns.Commit(ctx,
			Write{Key: "orders", Value: []byte(`[]`)},
			Write{Key: "cart", Value: []byte(`[{"productId":1}]`)},
		))

		err := ns.Commit(ctx,
			Write{Key: "orders", Value: []byte(`[{"id":1}]`), Version: 1},
			Write{Key: "cart", Value: []byte(`[]`), Version: 7},
		)
		require.ErrorIs(t, err, ErrConflict)

		orders, err := ns.Get(ctx, "orders")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(orders.Value))
		assert.Equal(t, int64(1), orders.Version)
	})

	t.Run("delete removes key", func(t *testing.T) {
		ctx := context.Background()
		ns := newNS(t)
		require.NoError(t, ns.Commit(ctx, Write{Key: "current_user", Value: []byte(`{"id":1}`)}))
		require.NoError(t, ns.Commit(ctx, Write{Key: "current_user", Delete: true, Version: 1}))

		e, err := ns.Get(ctx, "current_user")
		require.NoError(t, err)
		assert.False(t, e.Exists())
		assert.Nil(t, e.Value)

		// deleting an absent key is a no-op
		require.NoError(t, ns.Commit(ctx, Write{Key: "current_user", Delete: true, Version: e.Version}))
		require.NoError(t, ns.Commit(ctx, Write{Key: "never_written", Delete: true}))
		again, err := ns.Get(ctx, "current_user")
		require.NoError(t, err)
		assert.Equal(t, e.Version, again.Version)
	})

	t.Run("delete keeps version so stale writers cannot recreate", func(t *testing.T) {
		ctx := context.Background()
		ns := newNS(t)

		// a writer reads the key while it is still absent
		stale, err := ns.Get(ctx, "current_user")
		require.NoError(t, err)
		require.Zero(t, stale.Version)

		require.NoError(t, ns.Commit(ctx, Write{Key: "current_user", Value: []byte(`{"id":1}`)}))
		require.NoError(t, ns.Commit(ctx, Write{Key: "current_user", Delete: true, Version: 1}))

		err = ns.Commit(ctx, Write{Key: "current_user", Value: []byte(`{"id":2}`), Version: stale.Version})
		assert.ErrorIs(t, err, ErrConflict)
		err = ns.Commit(ctx, Write{Key: "current_user", Value: []byte(`{"id":2}`), Version: 1})
		assert.ErrorIs(t, err, ErrConflict)

		tomb, err := ns.Get(ctx, "current_user")
		require.NoError(t, err)
		assert.False(t, tomb.Exists())
		assert.Equal(t, int64(2), tomb.Version)

		require.NoError(t, ns.Commit(ctx, Write{Key: "current_user", Value: []byte(`{"id":3}`), Version: tomb.Version}))
		e, err := ns.Get(ctx, "current_user")
		require.NoError(t, err)
		assert.True(t, e.Exists())
		assert.Equal(t, int64(3), e.Version)
		assert.JSONEq(t, `{"id":3}`, string(e.Value))
	})

	t.Run("duplicate keys in one batch", func(t *testing.T) {
		ns := newNS(t)
		err := ns.Commit(context.Background(),
			Write{Key: "cart", Value: []byte(`[]`)},
			Write{Key: "cart", Value: []byte(`[]`)},
		)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newNS(t).Ping(context.Background()))
	})
}
