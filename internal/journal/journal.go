// Package journal persists a local record of submitted swap transactions in a
// bbolt database. The journal is append-only from the trading tools' point of
// view; entries are keyed by submission time so listing newest-first is a
// reverse cursor walk.
package journal

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pavelkarev/fourmeme-trader-mcp-server/metrics"
)

var tradesBucket = []byte("trades")

// Entry is one recorded swap or approval.
type Entry struct {
	Time         time.Time `json:"time"`
	Direction    string    `json:"direction"` // "buy", "sell", "approve"
	TokenAddress string    `json:"token_address"`
	AmountIn     string    `json:"amount_in"`
	MinOut       string    `json:"min_out,omitempty"`
	TxHash       string    `json:"tx_hash"`
	Status       string    `json:"status"`
	GasUsed      uint64    `json:"gas_used"`
	Block        uint64    `json:"block,omitempty"`
}

// Journal is a bbolt-backed trade log.
type Journal struct {
	db *bolt.DB
}

// Open opens (or creates) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(tradesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create trades bucket: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends an entry. Keys are zero-padded UnixNano timestamps so bbolt's
// byte ordering matches chronological ordering.
func (j *Journal) Record(e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	key := []byte(fmt.Sprintf("%020d:%s", e.Time.UnixNano(), e.TxHash))

	err = j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tradesBucket).Put(key, value)
	})
	metrics.RecordJournalWrite(err == nil)
	if err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (j *Journal) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	entries := make([]Entry, 0, limit)
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(tradesBucket).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("decode journal entry %s: %w", k, err)
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of recorded entries.
func (j *Journal) Count() (int, error) {
	var n int
	err := j.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(tradesBucket).Stats().KeyN
		return nil
	})
	return n, err
}
