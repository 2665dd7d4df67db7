// Package store keeps finished blog posts by run ID so a later rewrite can
// pick them up.
//
// Posts are serialized as JSON through a pluggable [Adapter]. Use
// [MemoryAdapter] for a single process and [DirAdapter] to keep posts
// across invocations:
//
//	adapter, err := store.NewDirAdapter(".blogsmith/runs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	posts := store.NewPosts(adapter)
//	err = posts.Save(ctx, outcome.RunID, outcome.Post())
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spetersoncode/blogsmith/blog"
)

// Posts stores blog.Post values by run ID.
type Posts struct {
	adapter Adapter
}

// NewPosts creates a post store. A nil adapter uses a MemoryAdapter.
func NewPosts(adapter Adapter) *Posts {
	if adapter == nil {
		adapter = NewMemoryAdapter()
	}
	return &Posts{adapter: adapter}
}

// Save stores post under runID, replacing any previous post.
func (p *Posts) Save(ctx context.Context, runID string, post blog.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return &SerializationError{Key: runID, Err: err}
	}
	if err := p.adapter.Set(ctx, runID, data); err != nil {
		return fmt.Errorf("store: save %s: %w", runID, err)
	}
	return nil
}

// Load returns the post stored under runID, or ErrNotFound.
func (p *Posts) Load(ctx context.Context, runID string) (blog.Post, error) {
	var post blog.Post
	data, ok, err := p.adapter.Get(ctx, runID)
	if err != nil {
		return post, fmt.Errorf("store: load %s: %w", runID, err)
	}
	if !ok {
		return post, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err := json.Unmarshal(data, &post); err != nil {
		return post, &SerializationError{Key: runID, Err: err}
	}
	return post, nil
}

// Delete removes the post stored under runID.
func (p *Posts) Delete(ctx context.Context, runID string) error {
	return p.adapter.Delete(ctx, runID)
}

// List returns the stored run IDs in sorted order.
func (p *Posts) List(ctx context.Context) ([]string, error) {
	return p.adapter.Keys(ctx)
}
