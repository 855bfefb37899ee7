// Package cache persists generated commit messages keyed by a normalized
// diff fingerprint, plus a history of everything generated. Both live in a
// single bbolt file under ~/.autocommit.
package cache

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

const (
	// MaxEntries bounds the message cache; oldest entries are evicted first.
	MaxEntries = 500
	// TTL is how long a cached message stays valid.
	TTL = 30 * 24 * time.Hour
)

var (
	bucketMessages = []byte("messages")
	bucketHistory  = []byte("history")
	bucketStats    = []byte("stats")

	keyHits   = []byte("hits")
	keyMisses = []byte("misses")
)

// Entry is one cached commit message.
type Entry struct {
	Message   string    `json:"message"`
	Style     string    `json:"style"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEntry records one generation event.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Style     string    `json:"style"`
	Model     string    `json:"model"`
	Message   string    `json:"message"`
}

// Stats summarizes cache effectiveness.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// HitRate returns the hit percentage over all lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Store is a bbolt-backed message cache and generation history.
type Store struct {
	db     *bolt.DB
	logger *logrus.Logger
	now    func() time.Time // swapped in tests
}

// DefaultPath returns ~/.autocommit/cache.db.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".autocommit", "cache.db"), nil
}

// Open opens (or creates) the store at path.
func Open(path string, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketMessages, bucketHistory, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache buckets: %w", err)
	}

	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func cacheKey(diff, style string) []byte {
	return []byte(Fingerprint(diff) + ":" + style)
}

// Get looks up a cached message for the diff and style. Expired entries are
// treated as misses. Hit/miss counters are updated on every lookup.
func (s *Store) Get(diff, style string) (string, bool) {
	var message string
	found := false

	err := s.db.Update(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketMessages).Get(cacheKey(diff, style))
		if data != nil {
			var entry Entry
			if err := json.Unmarshal(data, &entry); err == nil &&
				s.now().Sub(entry.Timestamp) < TTL {
				message = entry.Message
				found = true
			}
		}

		counter := keyMisses
		if found {
			counter = keyHits
		}
		return incrementCounter(tx.Bucket(bucketStats), counter)
	})
	if err != nil {
		s.logger.WithError(err).Warn("Cache lookup failed")
		return "", false
	}

	if found {
		s.logger.WithField("fingerprint", Fingerprint(diff)[:8]).Debug("Cache hit")
	}
	return message, found
}

// Put stores a generated message, evicting expired and surplus entries.
func (s *Store) Put(diff, style, message string) error {
	entry := Entry{Message: message, Style: style, Timestamp: s.now()}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		if err := s.prune(b); err != nil {
			return err
		}
		return b.Put(cacheKey(diff, style), data)
	})
}

// prune drops expired entries, then the oldest until under MaxEntries.
func (s *Store) prune(b *bolt.Bucket) error {
	type keyed struct {
		key []byte
		ts  time.Time
	}
	var live []keyed

	cur := b.Cursor()
	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		var entry Entry
		if err := json.Unmarshal(v, &entry); err != nil ||
			s.now().Sub(entry.Timestamp) >= TTL {
			// Cursor.Delete keeps the iteration valid, bucket.Delete would not
			if err := cur.Delete(); err != nil {
				return err
			}
			continue
		}
		live = append(live, keyed{key: append([]byte(nil), k...), ts: entry.Timestamp})
	}

	// +1 leaves room for the entry about to be written
	for len(live)+1 > MaxEntries {
		oldest := 0
		for i := range live {
			if live[i].ts.Before(live[oldest].ts) {
				oldest = i
			}
		}
		if err := b.Delete(live[oldest].key); err != nil {
			return err
		}
		live = append(live[:oldest], live[oldest+1:]...)
	}
	return nil
}

// Stats reads the current counters and entry count.
func (s *Store) Stats() (Stats, error) {
	var stats Stats
	err := s.db.View(func(tx *bolt.Tx) error {
		stats.Entries = tx.Bucket(bucketMessages).Stats().KeyN
		sb := tx.Bucket(bucketStats)
		stats.Hits = readCounter(sb, keyHits)
		stats.Misses = readCounter(sb, keyMisses)
		return nil
	})
	return stats, err
}

// Clear removes every cached message and resets the counters. History is
// untouched.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketMessages); err != nil {
			return err
		}
		if _, err := tx.CreateBucket(bucketMessages); err != nil {
			return err
		}
		sb := tx.Bucket(bucketStats)
		if err := sb.Delete(keyHits); err != nil {
			return err
		}
		return sb.Delete(keyMisses)
	})
}

// AppendHistory records a generation event.
func (s *Store) AppendHistory(model, style, message string) error {
	entry := HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: s.now(),
		Style:     style,
		Model:     model,
		Message:   message,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), data)
	})
}

// History returns the most recent entries, newest first, up to limit.
// A non-positive limit returns everything.
func (s *Store) History(limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bucketHistory).Cursor()
		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			if limit > 0 && len(entries) == limit {
				break
			}
			var entry HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	})
	return entries, err
}

// ClearHistory removes every history entry.
func (s *Store) ClearHistory() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketHistory); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketHistory)
		return err
	})
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func incrementCounter(b *bolt.Bucket, key []byte) error {
	next := readCounter(b, key) + 1
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, next)
	return b.Put(key, val)
}

func readCounter(b *bolt.Bucket, key []byte) uint64 {
	data := b.Get(key)
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}
