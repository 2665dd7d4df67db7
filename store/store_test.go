package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/blogsmith/blog"
)

func adapters(t *testing.T) map[string]Adapter {
	dir, err := NewDirAdapter(filepath.Join(t.TempDir(), "runs"))
	require.NoError(t, err)
	return map[string]Adapter{
		"memory": NewMemoryAdapter(),
		"dir":    dir,
	}
}

func TestAdapters(t *testing.T) {
	ctx := context.Background()
	for name, adapter := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := adapter.Get(ctx, "run-1")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, adapter.Set(ctx, "run-2", json.RawMessage(`{"a":2}`)))
			require.NoError(t, adapter.Set(ctx, "run-1", json.RawMessage(`{"a":1}`)))
			require.NoError(t, adapter.Set(ctx, "run-1", json.RawMessage(`{"a":3}`)))

			raw, ok, err := adapter.Get(ctx, "run-1")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `{"a":3}`, string(raw))

			keys, err := adapter.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"run-1", "run-2"}, keys)

			require.NoError(t, adapter.Delete(ctx, "run-2"))
			require.NoError(t, adapter.Delete(ctx, "run-2"), "deleting a missing key is not an error")
			keys, err = adapter.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"run-1"}, keys)
		})
	}
}

func TestMemoryAdapter_CopiesValues(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	value := json.RawMessage(`"abc"`)
	require.NoError(t, adapter.Set(ctx, "k", value))
	value[1] = 'x'

	raw, _, err := adapter.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(raw))
}

func TestMemoryAdapter_Concurrent(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = adapter.Set(ctx, "k", json.RawMessage(`1`))
			_, _, _ = adapter.Get(ctx, "k")
		}()
	}
	wg.Wait()

	keys, err := adapter.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestDirAdapter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	adapter, err := NewDirAdapter(dir)
	require.NoError(t, err)

	t.Run("rejects path keys", func(t *testing.T) {
		for _, key := range []string{"", "..", "../escape", `a\b`} {
			err := adapter.Set(ctx, key, json.RawMessage(`1`))
			var invalid *InvalidKeyError
			assert.True(t, errors.As(err, &invalid), key)
		}
	})

	t.Run("ignores foreign files", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-123"), []byte("x"), 0644))
		require.NoError(t, adapter.Set(ctx, "run-a", json.RawMessage(`1`)))

		keys, err := adapter.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"run-a"}, keys)
	})

	t.Run("survives a new adapter", func(t *testing.T) {
		again, err := NewDirAdapter(dir)
		require.NoError(t, err)
		raw, ok, err := again.Get(ctx, "run-a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "1", string(raw))
	})
}

func TestPosts(t *testing.T) {
	ctx := context.Background()
	post := blog.Post{
		SourceURL:    "https://blog.example/generics",
		ScrapedText:  "source",
		SEOTags:      []string{"golang"},
		Title:        "Mastering Go Generics",
		Body:         "Intro\n## One\ntext",
		QualityScore: 58,
		RewriteCount: 1,
	}

	for name, adapter := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			posts := NewPosts(adapter)

			require.NoError(t, posts.Save(ctx, "run-1", post))
			got, err := posts.Load(ctx, "run-1")
			require.NoError(t, err)
			assert.Equal(t, post, got)

			ids, err := posts.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"run-1"}, ids)

			require.NoError(t, posts.Delete(ctx, "run-1"))
			_, err = posts.Load(ctx, "run-1")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestPosts_CorruptValue(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()
	require.NoError(t, adapter.Set(ctx, "run-1", json.RawMessage(`{"draft_title": 5}`)))

	_, err := NewPosts(adapter).Load(ctx, "run-1")
	var serr *SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "run-1", serr.Key)
}

func TestNewPosts_DefaultsToMemory(t *testing.T) {
	posts := NewPosts(nil)
	require.NoError(t, posts.Save(context.Background(), "r", blog.Post{SourceURL: "u"}))
	got, err := posts.Load(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, "u", got.SourceURL)
}
