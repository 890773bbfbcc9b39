package likes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/umputun/likecontent/pkg/domain"
)

// rankBatch is how many ranked entries are fetched per store call
const rankBatch = 50

// TopQuery defines the most liked widget query
type TopQuery struct {
	Types []string
	Limit int
}

// TopLiked returns the most liked posts of eligible types, by descending count.
// Concurrent calls with the same query share one store pass.
func (s *Service) TopLiked(ctx context.Context) ([]domain.TopItem, error) {
	q := TopQuery{Types: s.settings.PostTypes, Limit: s.settings.WidgetLimit}
	if s.hooks.WidgetQuery != nil {
		q = s.hooks.WidgetQuery(q)
	}
	if q.Limit <= 0 {
		return []domain.TopItem{}, nil
	}

	key := fmt.Sprintf("%s|%d", strings.Join(q.Types, ","), q.Limit)
	res, err, _ := s.top.Do(key, func() (any, error) {
		return s.topLiked(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.TopItem), nil
}

// topLiked walks the ranking and keeps posts matching the query types
func (s *Service) topLiked(ctx context.Context, q TopQuery) ([]domain.TopItem, error) {
	types := make(map[string]bool, len(q.Types))
	for _, t := range q.Types {
		types[t] = true
	}

	items := make([]domain.TopItem, 0, q.Limit)
	for offset := 0; len(items) < q.Limit; offset += rankBatch {
		entries, err := s.meta.RankByMeta(ctx, MetaKey, offset, rankBatch)
		if err != nil {
			return nil, fmt.Errorf("rank posts: %w", err)
		}

		for _, e := range entries {
			post, err := s.posts.GetPost(ctx, e.PostID)
			if errors.Is(err, domain.ErrNotFound) {
				continue // ranking may outlive the post in external stores
			}
			if err != nil {
				return nil, fmt.Errorf("get ranked post: %w", err)
			}
			if !types[post.Type] {
				continue
			}

			count := domain.ParseCount(e.Value)
			items = append(items, domain.TopItem{
				PostID:    post.ID,
				Title:     post.Title,
				Permalink: s.permalink(*post),
				Count:     count,
				Label:     s.Label(count),
			})
			if len(items) == q.Limit {
				break
			}
		}

		if len(entries) < rankBatch {
			break
		}
	}
	return items, nil
}

// Label renders "N like" or "N likes" using the plural rules
func (s *Service) Label(count int64) string {
	if count != 0 && s.plural(count) == FormOne {
		return fmt.Sprintf("%d like", count)
	}
	return fmt.Sprintf("%d likes", count)
}
