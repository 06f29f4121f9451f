// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/staranto/blogctlgo/internal/api"
)

// newTestCache wires a Cache to a throwaway credentials file and the given
// handler. The returned counter tracks how many requests actually hit the
// server.
func newTestCache(t *testing.T, handler http.HandlerFunc) (*Cache, *Store, *int64, func()) {
	t.Helper()

	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))

	store := NewStoreAt(filepath.Join(t.TempDir(), "credentials.json"))
	cache := NewCache(api.NewClient(srv.URL), store)

	return cache, store, &calls, srv.Close
}

func okUserHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"id":1,"username":"ann"}`))
}

func TestCurrentUser_NoToken(t *testing.T) {
	cache, _, calls, closeFn := newTestCache(t, okUserHandler)
	defer closeFn()

	user := cache.CurrentUser(context.Background())
	assert.Nil(t, user)
	assert.EqualValues(t, 0, atomic.LoadInt64(calls), "no network call without a token")
}

func TestCurrentUser_SuccessAndCached(t *testing.T) {
	cache, store, calls, closeFn := newTestCache(t, okUserHandler)
	defer closeFn()
	assert.NoError(t, store.SetToken("abc"))

	user := cache.CurrentUser(context.Background())
	assert.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "ann", user.Username)

	// Second call is served from memory.
	again := cache.CurrentUser(context.Background())
	assert.Same(t, user, again)
	assert.EqualValues(t, 1, atomic.LoadInt64(calls))
}

func TestCurrentUser_CoalescesConcurrentCallers(t *testing.T) {
	release := make(chan struct{})
	cache, store, calls, closeFn := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		okUserHandler(w, r)
	})
	defer closeFn()
	assert.NoError(t, store.SetToken("abc"))

	const n = 8
	results := make([]*api.User, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.CurrentUser(context.Background())
		}(i)
	}

	// Give all callers time to pile onto the in-flight lookup, then let the
	// server answer.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(calls), "exactly one network call for %d callers", n)
	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i], "caller %d observed a different object", i)
	}
	assert.NotNil(t, results[0])
}

func TestCurrentUser_RejectionDeletesToken(t *testing.T) {
	cache, store, calls, closeFn := newTestCache(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})
	defer closeFn()
	assert.NoError(t, store.SetToken("expired"))

	user := cache.CurrentUser(context.Background())
	assert.Nil(t, user)

	tok, err := store.Token()
	assert.NoError(t, err)
	assert.Empty(t, tok, "rejected token must be deleted")

	// With the token gone, the next call short-circuits without a request.
	assert.Nil(t, cache.CurrentUser(context.Background()))
	assert.EqualValues(t, 1, atomic.LoadInt64(calls))
}

func TestCurrentUser_TransportFailureKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(okUserHandler))
	srv.Close() // nothing is listening anymore

	store := NewStoreAt(filepath.Join(t.TempDir(), "credentials.json"))
	assert.NoError(t, store.SetToken("abc"))
	cache := NewCache(api.NewClient(srv.URL), store)

	user := cache.CurrentUser(context.Background())
	assert.Nil(t, user)

	// The token survives: the server never actually rejected it.
	tok, err := store.Token()
	assert.NoError(t, err)
	assert.Equal(t, "abc", tok)
}

func TestCurrentUser_RetriesAfterSettledFailure(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	cache, store, calls, closeFn := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"boom"}`))
			return
		}
		okUserHandler(w, r)
	})
	defer closeFn()

	assert.NoError(t, store.SetToken("abc"))
	assert.Nil(t, cache.CurrentUser(context.Background()))

	// The in-flight slot was released, so after installing a fresh token a
	// later call fetches again instead of returning a stale pending result.
	fail.Store(false)
	assert.NoError(t, store.SetToken("abc2"))
	user := cache.CurrentUser(context.Background())
	assert.NotNil(t, user)
	assert.EqualValues(t, 2, atomic.LoadInt64(calls))
}

func TestClearUserCache_ForcesRefetch(t *testing.T) {
	cache, store, calls, closeFn := newTestCache(t, okUserHandler)
	defer closeFn()
	assert.NoError(t, store.SetToken("abc"))

	first := cache.CurrentUser(context.Background())
	assert.NotNil(t, first)

	cache.ClearUserCache()

	second := cache.CurrentUser(context.Background())
	assert.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.EqualValues(t, 2, atomic.LoadInt64(calls), "exactly one new network call after cache clear")

	// The token was never touched.
	tok, err := store.Token()
	assert.NoError(t, err)
	assert.Equal(t, "abc", tok)
}

func TestLogout_ClearsTokenAndUser(t *testing.T) {
	cache, store, calls, closeFn := newTestCache(t, okUserHandler)
	defer closeFn()
	assert.NoError(t, store.SetToken("abc"))

	assert.NotNil(t, cache.CurrentUser(context.Background()))

	assert.NoError(t, cache.Logout())

	tok, err := store.Token()
	assert.NoError(t, err)
	assert.Empty(t, tok)

	// Both stores are empty, so the lookup short-circuits.
	assert.Nil(t, cache.CurrentUser(context.Background()))
	assert.EqualValues(t, 1, atomic.LoadInt64(calls))
}

func TestLogout_NoPriorState(t *testing.T) {
	cache, _, _, closeFn := newTestCache(t, okUserHandler)
	defer closeFn()

	// Logout with nothing stored and nothing cached is still clean.
	assert.NoError(t, cache.Logout())
}

func TestTokenPassthrough(t *testing.T) {
	cache, store, _, closeFn := newTestCache(t, okUserHandler)
	defer closeFn()

	assert.NoError(t, cache.SetToken("abc"))
	tok, err := cache.Token()
	assert.NoError(t, err)
	assert.Equal(t, "abc", tok)

	direct, err := store.Token()
	assert.NoError(t, err)
	assert.Equal(t, tok, direct)
}
