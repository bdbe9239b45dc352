package history

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(original string) Record {
	return Record{
		Category:  "code",
		Original:  original,
		Optimized: "optimized " + original,
		Settings: Settings{
			Complexity: "intermediate",
			TargetAI:   "gemini",
			Style:      "professional",
			Language:   "zh-tw",
		},
	}
}

func TestStore_AllEmpty(t *testing.T) {
	records := NewStore(kv.NewMemory()).All()
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestStore_AppendFillsIDAndTimestamp(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	s := NewStore(kv.NewMemory(), WithClock(func() time.Time { return now }))

	stored, err := s.Append(record("a"))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, int64(1700000000123), stored.Timestamp)
	assert.Equal(t, now, stored.Time())
}

func TestStore_MostRecentFirst(t *testing.T) {
	s := NewStore(kv.NewMemory())

	for _, p := range []string{"first", "second", "third"} {
		_, err := s.Append(record(p))
		require.NoError(t, err)
	}

	records := s.All()
	require.Len(t, records, 3)
	assert.Equal(t, "third", records[0].Original)
	assert.Equal(t, "second", records[1].Original)
	assert.Equal(t, "first", records[2].Original)
}

func TestStore_TruncatesToMax(t *testing.T) {
	mem := kv.NewMemory()
	s := NewStore(mem)

	for i := 1; i <= 25; i++ {
		_, err := s.Append(record(fmt.Sprintf("prompt %d", i)))
		require.NoError(t, err)
	}

	records := NewStore(mem).All()
	require.Len(t, records, MaxRecords)
	assert.Equal(t, "prompt 25", records[0].Original)
	assert.Equal(t, "prompt 6", records[MaxRecords-1].Original)
}

func TestStore_PersistedShape(t *testing.T) {
	mem := kv.NewMemory()
	s := NewStore(mem)

	_, err := s.Append(Record{ID: "fixed", Timestamp: 42, Category: "art", Original: "o", Optimized: "p",
		Settings: Settings{Complexity: "basic", TargetAI: "claude", Style: "concise", Language: "en"}})
	require.NoError(t, err)

	raw, ok, err := mem.Get(kv.KeyHistory)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"fixed","timestamp":42,"category":"art","original":"o","optimized":"p",
		"settings":{"complexity":"basic","targetAI":"claude","style":"concise","language":"en"}}]`, raw)
}

func TestStore_UnparsableHistoryIsEmpty(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(kv.KeyHistory, "not json"))
	s := NewStore(mem)

	assert.Empty(t, s.All())

	_, err := s.Append(record("fresh"))
	require.NoError(t, err)
	records := s.All()
	require.Len(t, records, 1)
	assert.Equal(t, "fresh", records[0].Original)
}

func TestStore_LegacyRecordsWithoutID(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(kv.KeyHistory, `[{"timestamp":1,"category":"ui","original":"x","optimized":"y","settings":{}}]`))

	r, err := NewStore(mem).Get("1")
	require.NoError(t, err)
	assert.Equal(t, "x", r.Original)
	assert.Empty(t, r.ID)
}

func TestStore_Get(t *testing.T) {
	s := NewStore(kv.NewMemory())
	first, err := s.Append(record("first"))
	require.NoError(t, err)
	_, err = s.Append(record("second"))
	require.NoError(t, err)

	r, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "second", r.Original)

	r, err = s.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", r.Original)

	for _, ref := range []string{"0", "3", "-1", "missing"} {
		_, err = s.Get(ref)
		assert.True(t, errors.Is(err, errors.ErrHistoryNotFound), "ref %q", ref)
	}
}

type failingKV struct{ kv.Store }

func (failingKV) Set(string, string) error { return stderrors.New("quota exceeded") }

func TestStore_WriteFailure(t *testing.T) {
	s := NewStore(failingKV{kv.NewMemory()})

	_, err := s.Append(record("a"))
	assert.True(t, errors.Is(err, errors.ErrStorageFailed))
	assert.Empty(t, s.All())
}

// flakyReadKV fails reads once broken is set; writes still succeed.
type flakyReadKV struct {
	kv.Store
	broken bool
}

func (f *flakyReadKV) Get(key string) (string, bool, error) {
	if f.broken {
		return "", false, stderrors.New("permission denied")
	}
	return f.Store.Get(key)
}

func TestStore_ReadFailureKeepsHistory(t *testing.T) {
	mem := kv.NewMemory()
	flaky := &flakyReadKV{Store: mem}
	s := NewStore(flaky)
	for i := 1; i <= 5; i++ {
		_, err := s.Append(record(fmt.Sprintf("prompt %d", i)))
		require.NoError(t, err)
	}
	before, _, err := mem.Get(kv.KeyHistory)
	require.NoError(t, err)

	flaky.broken = true
	_, err = s.Append(record("new"))
	assert.True(t, errors.Is(err, errors.ErrStorageFailed))
	assert.Empty(t, s.All())

	after, _, err := mem.Get(kv.KeyHistory)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	flaky.broken = false
	assert.Len(t, s.All(), 5)
}
