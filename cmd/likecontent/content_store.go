package main

import (
	"context"
	"fmt"
	"log"

	"github.com/umputun/likecontent/pkg/likes"
	"github.com/umputun/likecontent/pkg/repository"
)

// metaStore is implemented by both sqlite and redis metadata stores
type metaStore interface {
	likes.MetaStore
	likes.Incrementer
	DeleteMeta(ctx context.Context, postID int64) error
}

// ContentStore adapts the post repository to the server, keeping metadata in sync on delete.
// With redis enabled the like counts live outside of sqlite and have to be removed explicitly.
type ContentStore struct {
	*repository.PostRepository
	meta metaStore
}

// newContentStore creates a content store on top of posts and metadata stores
func newContentStore(posts *repository.PostRepository, meta metaStore) *ContentStore {
	return &ContentStore{PostRepository: posts, meta: meta}
}

// DeletePost removes the post and every metadata key of it
func (c *ContentStore) DeletePost(ctx context.Context, id int64) error {
	if err := c.PostRepository.DeletePost(ctx, id); err != nil {
		return err
	}
	if err := c.meta.DeleteMeta(ctx, id); err != nil {
		return fmt.Errorf("delete meta of post %d: %w", id, err)
	}
	log.Printf("[DEBUG] post %d and its metadata removed", id)
	return nil
}
