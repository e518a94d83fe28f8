// Package journal keeps a local access log of delivery requests in LevelDB.
// Each request obtains an entry when it arrives and completes it before the
// response body starts streaming, so the store handle is never held across
// a long download. A nil Journal disables recording without branching at
// call sites.
package journal

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/repoharbor/sitemapd/internal/metrics"
)

// recordPrefix namespaces access records in the keyspace
const recordPrefix = "a:"

// Record is one persisted delivery request.
type Record struct {
	Time     time.Time
	Client   string
	Request  string // name as requested
	Resolved string // on-disk name, empty when lookup failed
	Size     int64
	Outcome  string // "ok", "not_found", "invalid"
}

// Entry is the request-scoped handle. Complete flushes it exactly once;
// later calls are no-ops so every exit path can release unconditionally.
type Entry struct {
	Record

	j    *Journal
	once sync.Once
}

// Journal is an append-only access log backed by LevelDB.
type Journal struct {
	db  *leveldb.DB
	seq atomic.Uint64
}

// Open opens (or creates) the journal at path. An empty path returns a nil
// journal, which records nothing.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, nil
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the underlying store.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}

// Obtain creates the entry for one request. Safe on a nil journal.
func (j *Journal) Obtain(client, request string) *Entry {
	return &Entry{
		j: j,
		Record: Record{
			Time:    time.Now(),
			Client:  client,
			Request: request,
		},
	}
}

// Complete flushes the entry and releases the handle. Idempotent; callers
// defer it and may also call it explicitly before streaming begins.
func (e *Entry) Complete() {
	if e == nil || e.j == nil {
		return
	}
	e.once.Do(func() {
		if err := e.j.write(&e.Record); err != nil {
			metrics.JournalFlushErrors.Inc()
			return
		}
		metrics.JournalEntriesTotal.WithLabelValues(e.Outcome).Inc()
	})
}

func (j *Journal) write(rec *Record) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return err
	}

	seq := j.seq.Add(1)
	key := fmt.Sprintf("%s%020d:%06d", recordPrefix, rec.Time.UnixNano(), seq)

	batch := new(leveldb.Batch)
	batch.Put([]byte(key), buf.Bytes())
	return j.db.Write(batch, nil)
}

// Records returns every persisted record in key order. Intended for
// operator tooling and tests; the delivery path never reads.
func (j *Journal) Records() ([]Record, error) {
	if j == nil {
		return nil, nil
	}

	it := j.db.NewIterator(util.BytesPrefix([]byte(recordPrefix)), nil)
	defer it.Release()

	var out []Record
	for it.Next() {
		var rec Record
		if err := gob.NewDecoder(bytes.NewReader(it.Value())).Decode(&rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return out, nil
}
