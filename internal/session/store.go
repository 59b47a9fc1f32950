package session

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/rushikulya/marketkit/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	bucketSessions = []byte("sessions")
	keyAdminToken  = []byte("admin_token")
	keySeller      = []byte("seller")
)

// Store is the process-wide durable session record: at most one admin token
// and one seller record, surviving restarts until an explicit logout.
type Store struct {
	db *bolt.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open session store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init session bucket")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PutAdminToken(token string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).Put(keyAdminToken, []byte(token))
	})
}

// AdminToken returns the persisted admin token, or "" when none is stored.
func (s *Store) AdminToken() (string, error) {
	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		token = string(tx.Bucket(bucketSessions).Get(keyAdminToken))
		return nil
	})
	return token, err
}

func (s *Store) PutSeller(rec *domain.Seller) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encode seller record")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessions).Put(keySeller, data)
	})
}

// Seller returns the persisted seller record, or nil when none is stored.
func (s *Store) Seller() (*domain.Seller, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSessions).Get(keySeller); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, err
	}
	var rec domain.Seller
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrap(err, "decode seller record")
	}
	return &rec, nil
}

// Clear removes every persisted credential. Clearing an empty store is a
// no-op, which keeps logout idempotent.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		if err := b.Delete(keyAdminToken); err != nil {
			return err
		}
		return b.Delete(keySeller)
	})
}
