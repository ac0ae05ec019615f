package storage

import (
	"encoding/json"
	"strings"
	"time"
)

// now is a small indirection to allow test stubbing.
var now = time.Now

// record is the wire format of a cache entry on the medium.
// Expire is either absent (never expires) or strictly after Time.
type record struct {
	Value  json.RawMessage `json:"value"`
	Time   int64           `json:"time"`   // stored-at, unix milliseconds
	Expire *int64          `json:"expire"` // expires-at, unix milliseconds; null = never
}

// Item is a decoded cache entry as returned by GetItem.
type Item struct {
	Value    json.RawMessage
	StoredAt time.Time
}

// Store is an expiring key/value cache over a pluggable Medium.
//
// Keys are case-normalised and prefix-namespaced before they touch the
// medium, so multiple logical stores can coexist on one physical medium.
// Expiry is checked lazily on read; there is no background eviction, so an
// expired-but-unread entry lingers on the medium until the next read.
type Store struct {
	medium Medium
	prefix string
}

// New creates a Store over medium with the given namespace prefix.
func New(medium Medium, prefix string) *Store {
	return &Store{
		medium: medium,
		prefix: prefix,
	}
}

// Key returns the namespaced, upper-cased medium key for a logical key.
func (s *Store) Key(key string) string {
	return strings.ToUpper(s.prefix + key)
}

// Set stores value under key. A positive ttl arms expiry that far in the
// future; ttl <= 0 means the entry never expires. Setting overwrites.
func (s *Store) Set(key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	rec := record{
		Value: raw,
		Time:  now().UnixMilli(),
	}
	if ttl > 0 {
		expire := now().Add(ttl).UnixMilli()
		rec.Expire = &expire
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.medium.SetItem(s.Key(key), string(data))
}

// Get decodes the value stored under key into out and reports whether a
// live entry was found. Misses, expired entries, and corrupt records all
// report false; the latter two are removed from the medium on the way out.
func (s *Store) Get(key string, out any) bool {
	item, ok := s.GetItem(key)
	if !ok {
		return false
	}
	if out != nil {
		if err := json.Unmarshal(item.Value, out); err != nil {
			return false
		}
	}
	return true
}

// GetItem returns the entry stored under key together with its stored-at
// timestamp.
//
// The read path is self-healing: an unparsable record is treated as absent
// and deleted, and an entry whose expiry is not in the future is deleted
// and reported as a miss.
func (s *Store) GetItem(key string) (Item, bool) {
	mediumKey := s.Key(key)

	raw, found, err := s.medium.GetItem(mediumKey)
	if err != nil || !found {
		return Item{}, false
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// Corrupt record: remove and behave as a miss.
		_ = s.medium.RemoveItem(mediumKey)
		return Item{}, false
	}

	if rec.Expire != nil && *rec.Expire <= now().UnixMilli() {
		_ = s.medium.RemoveItem(mediumKey)
		return Item{}, false
	}

	return Item{
		Value:    rec.Value,
		StoredAt: time.UnixMilli(rec.Time),
	}, true
}

// Remove deletes the entry stored under key.
func (s *Store) Remove(key string) error {
	return s.medium.RemoveItem(s.Key(key))
}

// Clear deletes every record on the underlying medium, including records
// written by other stores sharing it.
func (s *Store) Clear() error {
	return s.medium.Clear()
}
