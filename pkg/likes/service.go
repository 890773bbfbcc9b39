// Package likes implements the like counter: reading and incrementing the per-post counter
// kept in the metadata store, rendering the pluralized label, the like button and the
// most liked widget.
package likes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/umputun/likecontent/pkg/domain"
)

var (
	// ErrNoPostID is returned when the post id is missing or not positive
	ErrNoPostID = errors.New("no post id")
	// ErrUnsupportedType is returned when the post type is not eligible for likes, or the post doesn't exist
	ErrUnsupportedType = errors.New("post type does not support likes")
)

// MetaStore is the generic per-post key/value store
type MetaStore interface {
	GetMeta(ctx context.Context, postID int64, key string) (value string, found bool, err error)
	UpdateMeta(ctx context.Context, postID int64, key, value string) error
	RankByMeta(ctx context.Context, key string, offset, limit int) ([]domain.MetaEntry, error)
}

// Incrementer is implemented by stores able to increment a value atomically
type Incrementer interface {
	IncrementMeta(ctx context.Context, postID int64, key string) (int64, error)
}

// PostStore resolves posts by id
type PostStore interface {
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
}

// Hooks are optional extension points supplied by the host application
type Hooks struct {
	Settings    func(Settings) Settings                        // adjusts settings once, on construction
	Text        func(text string, postID, count int64) string // post-processes the template before {count} substitution
	WidgetQuery func(TopQuery) TopQuery                       // adjusts the most liked widget query
	LoadAssets  func(post domain.Post) bool                   // decides if client script is loaded on a page
	Permalink   func(post domain.Post) string                 // builds a link for posts without one
	Pluralizer  Pluralizer                                    // replaces locale plural rules
}

// Service is the like counter
type Service struct {
	meta     MetaStore
	posts    PostStore
	settings Settings
	hooks    Hooks
	plural   Pluralizer
	types    map[string]bool
	top      singleflight.Group
}

// New makes a like counter service. Settings hook is applied here, once.
func New(meta MetaStore, posts PostStore, settings Settings, hooks Hooks) (*Service, error) {
	if meta == nil || posts == nil {
		return nil, errors.New("meta and post stores are required")
	}
	if hooks.Settings != nil {
		settings = hooks.Settings(settings)
	}
	if settings.WidgetLimit <= 0 {
		settings.WidgetLimit = defaultWidgetLimit
	}

	pl := hooks.Pluralizer
	if pl == nil {
		var err error
		if pl, err = LocalePluralizer(settings.Locale); err != nil {
			return nil, err
		}
	}

	res := &Service{
		meta:     meta,
		posts:    posts,
		settings: settings,
		hooks:    hooks,
		plural:   pl,
		types:    make(map[string]bool, len(settings.PostTypes)),
	}
	for _, t := range settings.PostTypes {
		res.types[t] = true
	}

	_, atomic := meta.(Incrementer)
	log.Printf("[DEBUG] likes service, types: %v, locale: %q, atomic increment: %v",
		settings.PostTypes, settings.Locale, settings.AtomicIncrement && atomic)
	return res, nil
}

// Settings returns effective settings
func (s *Service) Settings() Settings {
	return s.settings
}

// Eligible checks if posts of the type can be liked
func (s *Service) Eligible(postType string) bool {
	return s.types[postType]
}

// Count returns the like count of the post. Missing or invalid ids give 0.
func (s *Service) Count(ctx context.Context, postID int64) (int64, error) {
	if postID <= 0 {
		return 0, nil
	}
	value, found, err := s.meta.GetMeta(ctx, postID, MetaKey)
	if err != nil {
		return 0, fmt.Errorf("get like count for %d: %w", postID, err)
	}
	if !found {
		return 0, nil
	}
	return domain.ParseCount(value), nil
}

// Increment adds a like to the post and returns the new count.
// The post must exist and be of an eligible type.
func (s *Service) Increment(ctx context.Context, postID int64) (int64, error) {
	if postID <= 0 {
		return 0, ErrNoPostID
	}

	post, err := s.posts.GetPost(ctx, postID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("post %d: %w", postID, ErrUnsupportedType)
	}
	if err != nil {
		return 0, fmt.Errorf("get post %d: %w", postID, err)
	}
	if !s.Eligible(post.Type) {
		return 0, fmt.Errorf("post %d of type %q: %w", postID, post.Type, ErrUnsupportedType)
	}

	if inc, ok := s.meta.(Incrementer); ok && s.settings.AtomicIncrement {
		count, err := inc.IncrementMeta(ctx, postID, MetaKey)
		if err != nil {
			return 0, fmt.Errorf("increment like count for %d: %w", postID, err)
		}
		return count, nil
	}

	// read-modify-write, concurrent increments of the same post may be lost
	count, err := s.Count(ctx, postID)
	if err != nil {
		return 0, err
	}
	count++
	if err := s.meta.UpdateMeta(ctx, postID, MetaKey, strconv.FormatInt(count, 10)); err != nil {
		return 0, fmt.Errorf("update like count for %d: %w", postID, err)
	}
	return count, nil
}

// Text renders the display string for a known count. Empty for invalid ids.
func (s *Service) Text(postID, count int64) string {
	if postID <= 0 {
		return ""
	}

	var text string
	switch s.form(count) {
	case FormZero:
		text = s.settings.ZeroText
	case FormOne:
		text = s.settings.OneText
	default:
		text = s.settings.ManyText
	}

	if s.hooks.Text != nil {
		text = s.hooks.Text(text, postID, count)
	}
	if text == "" {
		return ""
	}
	return strings.ReplaceAll(text, CountPlaceholder, strconv.FormatInt(count, 10))
}

// Render reads the count of the post and renders its display string
func (s *Service) Render(ctx context.Context, postID int64) (string, error) {
	if postID <= 0 {
		return "", nil
	}
	count, err := s.Count(ctx, postID)
	if err != nil {
		return "", err
	}
	return s.Text(postID, count), nil
}

// form picks the plural form, zero count is always FormZero
func (s *Service) form(count int64) PluralForm {
	if count == 0 {
		return FormZero
	}
	return s.plural(count)
}

// permalink returns the post link, falling back to the Permalink hook
func (s *Service) permalink(post domain.Post) string {
	if post.Permalink != "" {
		return post.Permalink
	}
	if s.hooks.Permalink != nil {
		return s.hooks.Permalink(post)
	}
	return "/posts/" + strconv.FormatInt(post.ID, 10)
}
