package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/testutil"
)

type eventLog struct {
	mu     sync.Mutex
	events []map[string]any
}

func (l *eventLog) Publish(_ context.Context, topic, _ string, event any) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	m["topic"] = topic

	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, m)
	return nil
}

func (l *eventLog) Close() error { return nil }

func (l *eventLog) last(t *testing.T) map[string]any {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotEmpty(t, l.events)
	return l.events[len(l.events)-1]
}

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	C      *CartHTTP
	P      *CatalogHTTP
	Events *eventLog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb := testutil.NewDB(t)
	r := &repo.GormRepo{DB: gdb}
	evs := &eventLog{}

	return &testEnv{
		T:      t,
		E:      NewEcho(Options{}),
		DB:     gdb,
		C:      &CartHTTP{Svc: &service.CartService{Repo: r, Events: evs}},
		P:      &CatalogHTTP{Svc: &service.CatalogService{Repo: r, Events: evs}},
		Events: evs,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, *http.Request, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, req, c
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}
