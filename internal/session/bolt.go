package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"go.etcd.io/bbolt"
)

const sessionsBucket = "sessions"

// BoltStore is the default session store: a single local bbolt file. It plays
// the role the browser's persistent storage plays in a pure client rendering
// of this app.
type BoltStore struct {
	db          *bbolt.DB
	stopCleanup chan struct{}
}

// NewBoltStore opens (creating if needed) the session database and starts a
// background sweep of expired records.
func NewBoltStore(dbPath string, cleanupInterval time.Duration) (*BoltStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create session db directory %s: %w", dir, err)
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db at %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions bucket: %w", err)
	}

	s := &BoltStore{db: db, stopCleanup: make(chan struct{})}
	if cleanupInterval > 0 {
		go s.runCleanupLoop(cleanupInterval)
	}
	return s, nil
}

func (s *BoltStore) Put(_ context.Context, rec *Record) error {
	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sessionsBucket)).Put([]byte(rec.Token), encoded)
	})
}

func (s *BoltStore) Get(_ context.Context, token string) (*Record, error) {
	var rec Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(sessionsBucket)).Get([]byte(token))
		if raw == nil {
			return ErrSessionNotFound
		}
		return json.Unmarshal(raw, &rec)
	})
	if err != nil {
		return nil, err
	}
	if rec.Expired(time.Now()) {
		// Lazy expiry; the sweep will reclaim the bytes.
		return nil, ErrSessionNotFound
	}
	return &rec, nil
}

func (s *BoltStore) Delete(_ context.Context, token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sessionsBucket)).Delete([]byte(token))
	})
}

func (s *BoltStore) Close() error {
	close(s.stopCleanup)
	return s.db.Close()
}

func (s *BoltStore) runCleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.sweepExpired(); err != nil {
				log.Warn().Err(err).Msg("session sweep failed")
			}
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *BoltStore) sweepExpired() error {
	now := time.Now()
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionsBucket))
		cursor := bucket.Cursor()
		var expired [][]byte
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			var rec Record
			if err := json.Unmarshal(value, &rec); err != nil || rec.Expired(now) {
				expired = append(expired, append([]byte(nil), key...))
			}
		}
		for _, key := range expired {
			if err := bucket.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
