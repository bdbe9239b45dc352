// Package history keeps the bounded list of past optimizations.
package history

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/kv"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxRecords is the number of records kept; older ones are dropped.
const MaxRecords = 20

// Settings are the selector values used for an optimization.
type Settings struct {
	Complexity string `json:"complexity"`
	TargetAI   string `json:"targetAI"`
	Style      string `json:"style"`
	Language   string `json:"language"`
}

// Record is one completed optimization.
type Record struct {
	ID        string   `json:"id,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Category  string   `json:"category"`
	Original  string   `json:"original"`
	Optimized string   `json:"optimized"`
	Settings  Settings `json:"settings"`
}

// Time returns the record timestamp.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Store persists records most-recent-first under kv.KeyHistory.
type Store struct {
	kv     kv.Store
	logger zerolog.Logger
	now    func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed parse failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithClock overrides the time source used for empty timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a history store backed by store.
func NewStore(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     store,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append prepends r, truncates to MaxRecords and persists the list.
// It fills in ID and Timestamp when they are empty and returns the stored record.
func (s *Store) Append(r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp == 0 {
		r.Timestamp = s.now().UnixMilli()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read()
	if err != nil {
		return Record{}, err
	}
	records := append([]Record{r}, existing...)
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}

	data, err := json.Marshal(records)
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrStorageFailed, "failed to encode history", "", err)
	}
	if err := s.kv.Set(kv.KeyHistory, string(data)); err != nil {
		return Record{}, errors.StorageFailed("write", err)
	}
	return r, nil
}

// All returns the persisted records, most recent first. Missing or
// unreadable history yields an empty list.
func (s *Store) All() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.read()
	if err != nil {
		s.logger.Debug().Err(err).Msg("Reading history failed")
		return []Record{}
	}
	return records
}

// Get finds a record by 1-based position in All or by ID.
func (s *Store) Get(ref string) (Record, error) {
	records := s.All()
	ref = strings.TrimSpace(ref)

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(records) {
			return records[n-1], nil
		}
		return Record{}, errors.HistoryNotFound(ref)
	}
	for _, r := range records {
		if r.ID != "" && r.ID == ref {
			return r, nil
		}
	}
	return Record{}, errors.HistoryNotFound(ref)
}

// read returns the persisted records. A storage error is returned; an
// unparsable list is treated as empty.
func (s *Store) read() ([]Record, error) {
	raw, ok, err := s.kv.Get(kv.KeyHistory)
	if err != nil {
		return nil, errors.StorageFailed("read", err)
	}
	if !ok {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Debug().Err(err).Msg("Ignoring unparsable history")
		return []Record{}, nil
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
