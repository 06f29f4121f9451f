// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"

	"github.com/staranto/blogctlgo/internal/api"
)

// lookupKey is the singleflight key for the who-am-I lookup. There is only
// one authenticated user per process, so a single slot suffices.
const lookupKey = "current-user"

// Cache holds the authenticated user's profile for the lifetime of the
// process. Construct one per invocation and pass it where needed; there is no
// package-level state.
type Cache struct {
	client *api.Client
	store  *Store

	mu   sync.Mutex
	user *api.User

	group singleflight.Group
}

// NewCache binds a Cache to an API client and a token store.
func NewCache(client *api.Client, store *Store) *Cache {
	return &Cache{client: client, store: store}
}

// CurrentUser returns the authenticated user's profile, or nil when there is
// no usable session.
//
//   - A cached profile is returned as-is.
//   - If a lookup is already in flight, the caller joins it: every concurrent
//     caller observes the same outcome from a single network call.
//   - With no stored token the result is nil and no request is made.
//   - A rejection from the server (any non-2xx) deletes the stored token and
//     yields nil: the session is gone.
//   - A transport failure logs diagnostics and yields nil, leaving the token
//     in place; it may still be valid next time.
//
// The in-flight slot is always released when the lookup settles, so a later
// call can retry.
func (c *Cache) CurrentUser(ctx context.Context) *api.User {
	c.mu.Lock()
	if c.user != nil {
		u := c.user
		c.mu.Unlock()
		return u
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(lookupKey, func() (any, error) {
		return c.fetch(ctx), nil
	})

	u, _ := v.(*api.User)
	return u
}

func (c *Cache) fetch(ctx context.Context) *api.User {
	token, err := c.store.Token()
	if err != nil {
		log.WithError(err).Error("failed to read stored token")
		return nil
	}
	if token == "" {
		log.Debug("no stored token, skipping lookup")
		return nil
	}

	c.client.SetToken(token)

	user, err := c.client.CurrentUser(ctx)
	if err != nil {
		if api.IsTransport(err) {
			// The server never answered. The token may well still be valid,
			// so it stays put.
			log.WithError(err).Warn("current-user lookup failed in transit")
			return nil
		}

		// The server answered and said no. The session is dead; drop the
		// token so the next call short-circuits.
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			log.Debugf("current-user lookup rejected with %d", apiErr.StatusCode)
		}
		if err := c.store.DeleteToken(); err != nil {
			log.WithError(err).Error("failed to delete rejected token")
		}
		return nil
	}

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()

	return user
}

// Token reads the stored token.
func (c *Cache) Token() (string, error) {
	return c.store.Token()
}

// SetToken persists a new token. The cached user is left alone; callers that
// switch identities should also ClearUserCache.
func (c *Cache) SetToken(token string) error {
	return c.store.SetToken(token)
}

// ClearUserCache drops only the in-memory profile. The next CurrentUser call
// hits the network again even though the token may still be valid.
func (c *Cache) ClearUserCache() {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
}

// Logout deletes the token and clears the cached user, in that order. The
// command layer performs the "navigation" (printing the site root) only after
// Logout returns.
func (c *Cache) Logout() error {
	err := c.store.DeleteToken()
	c.ClearUserCache()
	return err
}
