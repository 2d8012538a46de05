// Package cache keeps generated replies per post fingerprint. The cache is bounded,
// the oldest entries are evicted first and there is no age based expiry.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/replyscope/pkg/domain"
)

const (
	storeKey          = "replyCache"
	defaultMaxEntries = 50
)

// Store is the durable key/value storage
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// ReplyCache maps post fingerprints to generated replies
type ReplyCache struct {
	store      Store
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]domain.CacheEntry
	last    time.Time
}

// New makes a cache holding up to maxEntries posts, 50 if maxEntries is not positive
func New(store Store, maxEntries int) *ReplyCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &ReplyCache{store: store, maxEntries: maxEntries, now: time.Now, entries: map[string]domain.CacheEntry{}}
}

// Get returns cached replies for a fingerprint
func (c *ReplyCache) Get(fp string) ([]domain.Reply, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[fp]
	if !ok {
		return nil, false
	}
	res := make([]domain.Reply, len(e.Replies))
	copy(res, e.Replies)
	return res, true
}

// Put stores replies for a fingerprint, evicts the oldest entries above the limit and persists the cache
func (c *ReplyCache) Put(ctx context.Context, fp string, replies []domain.Reply) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// timestamps strictly increase, so eviction order is deterministic even within one clock tick
	ts := c.now()
	if !ts.After(c.last) {
		ts = c.last.Add(time.Millisecond)
	}
	c.last = ts

	stored := make([]domain.Reply, len(replies))
	copy(stored, replies)
	c.entries[fp] = domain.CacheEntry{Fingerprint: fp, Replies: stored, Timestamp: ts}
	c.evict()

	if err := c.store.Set(ctx, storeKey, c.entries); err != nil {
		return fmt.Errorf("save reply cache: %w", err)
	}
	return nil
}

// Len returns the number of cached posts
func (c *ReplyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops all cached replies
func (c *ReplyCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]domain.CacheEntry{}
	if err := c.store.Set(ctx, storeKey, c.entries); err != nil {
		return fmt.Errorf("save reply cache: %w", err)
	}
	return nil
}

// Flush persists the cache
func (c *ReplyCache) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Set(ctx, storeKey, c.entries); err != nil {
		return fmt.Errorf("save reply cache: %w", err)
	}
	return nil
}

// storedEntry accepts the current reply objects and both legacy reply forms
type storedEntry struct {
	Fingerprint string            `json:"fingerprint"`
	Replies     []json.RawMessage `json:"replies"`
	Timestamp   json.RawMessage   `json:"timestamp"`
}

// storedReply covers {text, translation} and the legacy {reply, translation} objects
type storedReply struct {
	Text        string  `json:"text"`
	Reply       *string `json:"reply"`
	Translation *string `json:"translation"`
}

// Load restores the persisted cache. Entries stored with plain string replies, {reply, translation}
// objects or unix millis timestamps are converted, the converted cache is saved back once.
func (c *ReplyCache) Load(ctx context.Context) error {
	var raw map[string]storedEntry
	if _, err := c.store.Get(ctx, storeKey, &raw); err != nil {
		return fmt.Errorf("load reply cache: %w", err)
	}

	entries := make(map[string]domain.CacheEntry, len(raw))
	migrated := 0
	for fp, se := range raw {
		e := domain.CacheEntry{Fingerprint: fp, Replies: make([]domain.Reply, 0, len(se.Replies))}
		legacy := false
		for _, r := range se.Replies {
			var text string
			if err := json.Unmarshal(r, &text); err == nil {
				e.Replies = append(e.Replies, domain.Reply{Text: text})
				legacy = true
				continue
			}
			var sr storedReply
			if err := json.Unmarshal(r, &sr); err != nil {
				lgr.Printf("[WARN] skip unreadable cached reply for %s: %v", fp, err)
				continue
			}
			reply := domain.Reply{Text: sr.Text, Translation: sr.Translation}
			if sr.Reply != nil && sr.Text == "" {
				reply.Text = *sr.Reply
				legacy = true
			}
			if reply.Translation != nil && *reply.Translation == "" {
				reply.Translation = nil
			}
			if reply.Text == "" {
				lgr.Printf("[WARN] skip empty cached reply for %s", fp)
				continue
			}
			e.Replies = append(e.Replies, reply)
		}
		ts, isMillis := parseTimestamp(se.Timestamp)
		e.Timestamp = ts
		if legacy || isMillis {
			migrated++
		}
		entries[fp] = e
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	for _, e := range entries {
		if e.Timestamp.After(c.last) {
			c.last = e.Timestamp
		}
	}
	c.evict()

	if migrated == 0 {
		return nil
	}
	lgr.Printf("[INFO] migrated %d legacy reply cache entries", migrated)
	if err := c.store.Set(ctx, storeKey, c.entries); err != nil {
		return fmt.Errorf("save migrated reply cache: %w", err)
	}
	return nil
}

// evict removes the oldest entries until the cache fits, caller holds the lock
func (c *ReplyCache) evict() {
	if len(c.entries) <= c.maxEntries {
		return
	}
	fps := make([]string, 0, len(c.entries))
	for fp := range c.entries {
		fps = append(fps, fp)
	}
	sort.Slice(fps, func(i, j int) bool {
		ti, tj := c.entries[fps[i]].Timestamp, c.entries[fps[j]].Timestamp
		if ti.Equal(tj) {
			return fps[i] < fps[j]
		}
		return ti.Before(tj)
	})
	for _, fp := range fps[:len(fps)-c.maxEntries] {
		delete(c.entries, fp)
	}
}

// parseTimestamp reads an RFC 3339 time or unix millis, the flag reports the millis form
func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms), true
	}
	var ts time.Time
	if err := json.Unmarshal(raw, &ts); err != nil {
		return time.Time{}, false
	}
	return ts, false
}
