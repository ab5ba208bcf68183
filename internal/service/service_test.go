package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/testutil"
)

type published struct {
	Topic string
	Key   string
	Event any
}

type recorder struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (r *recorder) Publish(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, published{Topic: topic, Key: key, Event: event})
	return r.err
}

func (r *recorder) Close() error { return nil }

func (r *recorder) last(t *testing.T) published {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.msgs)
	return r.msgs[len(r.msgs)-1]
}

func (r *recorder) cartEvent(t *testing.T) events.CartEvent {
	t.Helper()
	p := r.last(t)
	require.Equal(t, events.TopicCart, p.Topic)
	ev, ok := p.Event.(events.CartEvent)
	require.True(t, ok)
	return ev
}

type fakeIndex struct {
	indexed []models.Product
	results []models.Product
	err     error
}

func (f *fakeIndex) IndexProduct(_ context.Context, p models.Product) error {
	f.indexed = append(f.indexed, p)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, _ string, _, _ int) (int64, []models.Product, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	return int64(len(f.results)), f.results, nil
}

var errIndexDown = errors.New("index down")

type testEnv struct {
	DB      *gorm.DB
	Cart    *CartService
	Catalog *CatalogService
	Events  *recorder
	Index   *fakeIndex
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb := testutil.NewDB(t)
	r := &repo.GormRepo{DB: gdb}
	rec := &recorder{}

	return &testEnv{
		DB:      gdb,
		Cart:    &CartService{Repo: r, Events: rec},
		Catalog: &CatalogService{Repo: r, Events: rec},
		Events:  rec,
		Index:   &fakeIndex{},
	}
}
