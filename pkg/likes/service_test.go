package likes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/likecontent/pkg/domain"
)

// memStore is an in-memory meta and post store without atomic increment
type memStore struct {
	mu      sync.Mutex
	meta    map[int64]map[string]string
	posts   map[int64]domain.Post
	writes  int
	metaErr error
}

func newMemStore(posts ...domain.Post) *memStore {
	res := &memStore{meta: map[int64]map[string]string{}, posts: map[int64]domain.Post{}}
	for _, p := range posts {
		res.posts[p.ID] = p
	}
	return res
}

func (m *memStore) GetMeta(_ context.Context, postID int64, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.metaErr != nil {
		return "", false, m.metaErr
	}
	v, ok := m.meta[postID][key]
	return v, ok, nil
}

func (m *memStore) UpdateMeta(_ context.Context, postID int64, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.metaErr != nil {
		return m.metaErr
	}
	if m.meta[postID] == nil {
		m.meta[postID] = map[string]string{}
	}
	m.meta[postID][key] = value
	m.writes++
	return nil
}

func (m *memStore) RankByMeta(_ context.Context, key string, offset, limit int) ([]domain.MetaEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.metaErr != nil {
		return nil, m.metaErr
	}
	var entries []domain.MetaEntry
	for id, kv := range m.meta {
		if v, ok := kv[key]; ok {
			entries = append(entries, domain.MetaEntry{PostID: id, Key: key, Value: v})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		ci, cj := domain.ParseCount(entries[i].Value), domain.ParseCount(entries[j].Value)
		if ci != cj {
			return ci > cj
		}
		return entries[i].PostID < entries[j].PostID
	})
	if offset >= len(entries) {
		return []domain.MetaEntry{}, nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end], nil
}

func (m *memStore) GetPost(_ context.Context, id int64) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("get post %d: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

// atomicStore adds IncrementMeta to memStore
type atomicStore struct {
	*memStore
	increments int
}

func (a *atomicStore) IncrementMeta(_ context.Context, postID int64, key string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.meta[postID] == nil {
		a.meta[postID] = map[string]string{}
	}
	n := domain.ParseCount(a.meta[postID][key]) + 1
	a.meta[postID][key] = strconv.FormatInt(n, 10)
	a.increments++
	return n, nil
}

func newTestService(t *testing.T, store MetaStore, posts PostStore, hooks Hooks) *Service {
	t.Helper()
	svc, err := New(store, posts, DefaultSettings(), hooks)
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	store := newMemStore()

	t.Run("missing stores", func(t *testing.T) {
		_, err := New(nil, store, DefaultSettings(), Hooks{})
		require.Error(t, err)
	})

	t.Run("bad locale", func(t *testing.T) {
		settings := DefaultSettings()
		settings.Locale = "not a locale!"
		_, err := New(store, store, settings, Hooks{})
		require.Error(t, err)
	})

	t.Run("settings hook applied once", func(t *testing.T) {
		calls := 0
		svc, err := New(store, store, DefaultSettings(), Hooks{Settings: func(s Settings) Settings {
			calls++
			s.PostTypes = append(s.PostTypes, "recipe")
			s.WidgetLimit = 0
			return s
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, svc.Eligible("recipe"))
		assert.True(t, svc.Eligible("post"))
		assert.False(t, svc.Eligible("page"))
		assert.Equal(t, 20, svc.Settings().WidgetLimit, "non-positive limit replaced by default")
		svc.Text(1, 1)
		assert.Equal(t, 1, calls)
	})
}

func TestService_Count(t *testing.T) {
	store := newMemStore(domain.Post{ID: 1, Type: "post"})
	svc := newTestService(t, store, store, Hooks{})
	ctx := context.Background()

	n, err := svc.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "no likes yet")

	n, err = svc.Count(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = svc.Count(ctx, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	for stored, want := range map[string]int64{"12": 12, "junk": 0, "-4": 0, " 3 ": 3} {
		require.NoError(t, store.UpdateMeta(ctx, 1, MetaKey, stored))
		n, err = svc.Count(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, want, n, "stored %q", stored)
	}

	store.metaErr = errors.New("boom")
	_, err = svc.Count(ctx, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestService_Increment(t *testing.T) {
	ctx := context.Background()
	posts := []domain.Post{{ID: 42, Type: "post"}, {ID: 43, Type: "page"}}

	t.Run("read-modify-write store", func(t *testing.T) {
		store := newMemStore(posts...)
		svc := newTestService(t, store, store, Hooks{})

		before, err := svc.Count(ctx, 42)
		require.NoError(t, err)
		n, err := svc.Increment(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, before+1, n)

		after, err := svc.Count(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, n, after)

		value, _, err := store.GetMeta(ctx, 42, MetaKey)
		require.NoError(t, err)
		assert.Equal(t, "1", value)
	})

	t.Run("atomic store", func(t *testing.T) {
		store := &atomicStore{memStore: newMemStore(posts...)}
		svc := newTestService(t, store, store, Hooks{})

		for i := int64(1); i <= 3; i++ {
			n, err := svc.Increment(ctx, 42)
			require.NoError(t, err)
			assert.Equal(t, i, n)
		}
		assert.Equal(t, 3, store.increments)
		assert.Equal(t, 0, store.writes, "atomic path never writes through UpdateMeta")
	})

	t.Run("atomic disabled", func(t *testing.T) {
		store := &atomicStore{memStore: newMemStore(posts...)}
		settings := DefaultSettings()
		settings.AtomicIncrement = false
		svc, err := New(store, store, settings, Hooks{})
		require.NoError(t, err)

		n, err := svc.Increment(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, 0, store.increments)
		assert.Equal(t, 1, store.writes)
	})

	t.Run("no post id", func(t *testing.T) {
		store := newMemStore(posts...)
		svc := newTestService(t, store, store, Hooks{})
		for _, id := range []int64{0, -1} {
			_, err := svc.Increment(ctx, id)
			require.ErrorIs(t, err, ErrNoPostID)
		}
		assert.Equal(t, 0, store.writes)
	})

	t.Run("unsupported type", func(t *testing.T) {
		store := newMemStore(posts...)
		svc := newTestService(t, store, store, Hooks{})
		_, err := svc.Increment(ctx, 43)
		require.ErrorIs(t, err, ErrUnsupportedType)
		assert.Equal(t, 0, store.writes)

		n, err := svc.Count(ctx, 43)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n, "count unchanged")
	})

	t.Run("missing post", func(t *testing.T) {
		store := newMemStore(posts...)
		svc := newTestService(t, store, store, Hooks{})
		_, err := svc.Increment(ctx, 999)
		require.ErrorIs(t, err, ErrUnsupportedType)
		assert.Equal(t, 0, store.writes)
	})

	t.Run("store failure", func(t *testing.T) {
		store := newMemStore(posts...)
		store.metaErr = errors.New("disk full")
		svc := newTestService(t, store, store, Hooks{})
		_, err := svc.Increment(ctx, 42)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnsupportedType)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestService_Text(t *testing.T) {
	store := newMemStore()
	settings := DefaultSettings()
	settings.OneText = "{count} like, really {count}"
	settings.ManyText = "{count} likes"
	svc, err := New(store, store, settings, Hooks{})
	require.NoError(t, err)

	tests := []struct {
		name   string
		postID int64
		count  int64
		want   string
	}{
		{name: "zero", postID: 1, count: 0, want: "Like the post? Give it a +1"},
		{name: "one replaces every placeholder", postID: 1, count: 1, want: "1 like, really 1"},
		{name: "many", postID: 1, count: 5, want: "5 likes"},
		{name: "english 21 is many", postID: 1, count: 21, want: "21 likes"},
		{name: "empty id", postID: 0, count: 5, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Text(tt.postID, tt.count))
		})
	}
}

func TestService_TextDefaults(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, store, Hooks{})

	assert.Equal(t, "Like the post? Give it a +1", svc.Text(1, 0))
	assert.Equal(t, "1", svc.Text(1, 1))
	assert.Equal(t, "5", svc.Text(1, 5))

	// default template round trip recovers the count
	for _, n := range []int64{1, 2, 17, 1000} {
		parsed, err := strconv.ParseInt(svc.Text(1, n), 10, 64)
		require.NoError(t, err)
		assert.Equal(t, n, parsed)
	}
}

func TestService_TextZeroPlaceholder(t *testing.T) {
	store := newMemStore()
	settings := DefaultSettings()
	settings.ZeroText = "{count} likes so far"
	svc, err := New(store, store, settings, Hooks{})
	require.NoError(t, err)
	assert.Equal(t, "0 likes so far", svc.Text(1, 0))
}

func TestService_TextHook(t *testing.T) {
	store := newMemStore()
	var gotPost, gotCount int64
	svc := newTestService(t, store, store, Hooks{Text: func(text string, postID, count int64) string {
		gotPost, gotCount = postID, count
		assert.Equal(t, "{count}", text, "hook sees the template before substitution")
		return "♥ " + text
	}})

	assert.Equal(t, "♥ 3", svc.Text(7, 3))
	assert.Equal(t, int64(7), gotPost)
	assert.Equal(t, int64(3), gotCount)
}

func TestService_TextLocale(t *testing.T) {
	store := newMemStore()
	settings := DefaultSettings()
	settings.Locale = "ru"
	settings.OneText = "{count} лайк"
	settings.ManyText = "{count} лайков"
	svc, err := New(store, store, settings, Hooks{})
	require.NoError(t, err)

	assert.Equal(t, "1 лайк", svc.Text(1, 1))
	assert.Equal(t, "21 лайк", svc.Text(1, 21))
	assert.Equal(t, "11 лайков", svc.Text(1, 11))
	assert.Equal(t, "5 лайков", svc.Text(1, 5))
}

func TestService_TextCustomPluralizer(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, store, Hooks{Pluralizer: func(int64) PluralForm { return FormOne }})
	svc.settings.OneText = "one:{count}"
	assert.Equal(t, "one:9", svc.Text(1, 9))
	assert.Equal(t, "Like the post? Give it a +1", svc.Text(1, 0), "zero never reaches pluralizer")
}

func TestService_Render(t *testing.T) {
	store := newMemStore(domain.Post{ID: 1, Type: "post"})
	svc := newTestService(t, store, store, Hooks{})
	ctx := context.Background()

	text, err := svc.Render(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Like the post? Give it a +1", text)

	require.NoError(t, store.UpdateMeta(ctx, 1, MetaKey, "4"))
	text, err = svc.Render(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "4", text)

	text, err = svc.Render(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	for _, atomic := range []bool{true, false} {
		t.Run(fmt.Sprintf("atomic=%v", atomic), func(t *testing.T) {
			store := &atomicStore{memStore: newMemStore(domain.Post{ID: 42, Type: "post"})}
			settings := DefaultSettings()
			settings.AtomicIncrement = atomic
			settings.OneText = "{count} person liked this"
			settings.ManyText = "{count} people liked this"
			svc, err := New(store, store, settings, Hooks{})
			require.NoError(t, err)

			n, err := svc.Increment(ctx, 42)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
			assert.Equal(t, "1 person liked this", svc.Text(42, n))

			n, err = svc.Increment(ctx, 42)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)
			assert.Equal(t, "2 people liked this", svc.Text(42, n))

			value, _, err := store.GetMeta(ctx, 42, MetaKey)
			require.NoError(t, err)
			assert.Equal(t, "2", value)
		})
	}
}

func TestService_IncrementConcurrentAtomic(t *testing.T) {
	store := &atomicStore{memStore: newMemStore(domain.Post{ID: 1, Type: "post"})}
	svc := newTestService(t, store, store, Hooks{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Increment(ctx, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := svc.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)
}

func TestPluralForm_String(t *testing.T) {
	assert.Equal(t, "zero", FormZero.String())
	assert.Equal(t, "one", FormOne.String())
	assert.Equal(t, "many", FormMany.String())
}

func TestLocalePluralizer(t *testing.T) {
	tests := []struct {
		locale string
		counts map[int64]PluralForm
	}{
		{locale: "", counts: map[int64]PluralForm{0: FormZero, 1: FormOne, 2: FormMany, 21: FormMany}},
		{locale: "en-US", counts: map[int64]PluralForm{1: FormOne, 101: FormMany, -1: FormOne}},
		{locale: "ru", counts: map[int64]PluralForm{1: FormOne, 21: FormOne, 11: FormMany, 25: FormMany}},
		{locale: "ja", counts: map[int64]PluralForm{1: FormMany, 2: FormMany}},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			pl, err := LocalePluralizer(tt.locale)
			require.NoError(t, err)
			for n, want := range tt.counts {
				assert.Equal(t, want, pl(n), "count %d", n)
			}
		})
	}

	_, err := LocalePluralizer("!!")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse locale"))
}
