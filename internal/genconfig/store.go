package genconfig

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/kv"
	"github.com/rs/zerolog"
)

// Store keeps the current Config and persists it to a kv.Store. The API key
// lives both in its own slot and inside the record; the slot wins on load.
type Store struct {
	kv     kv.Store
	logger zerolog.Logger

	mu      sync.Mutex
	current Config
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for swallowed parse failures.
func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a Store whose current snapshot is Default() until Load.
func NewStore(store kv.Store, opts ...StoreOption) *Store {
	s := &Store{
		kv:      store,
		logger:  zerolog.Nop(),
		current: Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the in-memory snapshot.
func (s *Store) Current() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// Load reads the persisted record. A missing or unparsable record yields
// the defaults, which are not written back.
func (s *Store) Load() (Config, error) {
	raw, ok, err := s.kv.Get(kv.KeyConfig)
	if err != nil {
		return Config{}, errors.StorageFailed("read", err)
	}

	cfg := Default()
	if ok {
		cfg = s.decodeRecord(raw)
	}

	key, ok, err := s.kv.Get(kv.KeyAPIKey)
	if err != nil {
		return Config{}, errors.StorageFailed("read", err)
	}
	if key = strings.TrimSpace(key); ok && key != "" {
		cfg.APIKey = key
	}

	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	return cfg.clone(), nil
}

func (s *Store) decodeRecord(raw string) Config {
	p, err := decodePartial([]byte(raw))
	if err != nil {
		s.logger.Debug().Err(err).Msg("Ignoring unparsable config record")
		return Default()
	}
	ch, err := p.changes()
	if err != nil {
		s.logger.Debug().Err(err).Msg("Ignoring invalid config record")
		return Default()
	}
	cfg := Default().With(ch)
	if err := cfg.Validate(); err != nil {
		s.logger.Debug().Err(err).Msg("Ignoring out-of-range config record")
		return Default()
	}
	return cfg
}

// Save validates cfg, overwrites the record and adopts cfg as current.
func (s *Store) Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(cfg.clone())
}

// Update merges ch into the current snapshot and persists the result.
func (s *Store) Update(ch Changes) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.With(ch)
	if err := next.Validate(); err != nil {
		return Config{}, errors.ConfigInvalid(err.Error())
	}
	if err := s.persistLocked(next); err != nil {
		return Config{}, err
	}
	return next.clone(), nil
}

// SetAPIKey stores a trimmed key in the credential slot and the record.
func (s *Store) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(kv.KeyAPIKey, key); err != nil {
		return errors.StorageFailed("write", err)
	}
	next := s.current.With(Changes{APIKey: &key})
	return s.persistLocked(next)
}

// Import merges a previously exported document over the current snapshot.
// The payload's api_key is ignored. On any failure nothing changes.
func (s *Store) Import(data []byte) (Config, error) {
	p, err := decodePartial(data)
	if err != nil {
		return Config{}, errors.ImportInvalid("not valid JSON", err)
	}
	if !p.hasMarker() {
		return Config{}, errors.ImportInvalid("missing \"type\": \""+TypeMarker+"\" marker", nil)
	}
	ch, err := p.changes()
	if err != nil {
		return Config{}, errors.ImportInvalid(err.Error(), nil)
	}
	ch.APIKey = nil

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.With(ch)
	if err := next.Validate(); err != nil {
		return Config{}, errors.ImportInvalid(err.Error(), nil)
	}
	if err := s.persistLocked(next); err != nil {
		return Config{}, err
	}
	return next.clone(), nil
}

// Export returns the current snapshot as indented JSON with the key blanked.
func (s *Store) Export(now time.Time) ([]byte, error) {
	data, err := marshalExport(s.Current(), now)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to encode config", "", err)
	}
	return data, nil
}

// Reset restores the default model and generation parameters. The key,
// base URL and safety settings are kept.
func (s *Store) Reset() (Config, error) {
	d := Default()
	return s.Update(Changes{
		Model:           &d.Model,
		Temperature:     &d.Temperature,
		TopK:            &d.TopK,
		TopP:            &d.TopP,
		MaxOutputTokens: &d.MaxOutputTokens,
		StopSequences:   &d.StopSequences,
	})
}

// Bootstrap seeds storage from the JSON file at path when neither a record
// nor a credential exists yet. It reports whether anything was written.
// A missing or unusable file is not an error.
func (s *Store) Bootstrap(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	for _, key := range []string{kv.KeyConfig, kv.KeyAPIKey} {
		_, ok, err := s.kv.Get(key)
		if err != nil {
			return false, errors.StorageFailed("read", err)
		}
		if ok {
			return false, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", path).Msg("Skipping bootstrap config")
		}
		return false, nil
	}

	p, err := decodePartial(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Skipping unparsable bootstrap config")
		return false, nil
	}
	ch, err := p.changes()
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Skipping invalid bootstrap config")
		return false, nil
	}
	cfg := Default().With(ch)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if err := cfg.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Skipping invalid bootstrap config")
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistLocked(cfg); err != nil {
		return false, err
	}
	s.logger.Info().Str("path", path).Msg("Seeded Gemini config from bootstrap file")
	return true, nil
}

// persistLocked writes cfg as the record and adopts it. When the key
// changed, the credential slot is rewritten first. Caller holds s.mu.
func (s *Store) persistLocked(cfg Config) error {
	record, err := marshalRecord(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to encode config", "", err)
	}
	if cfg.APIKey != s.current.APIKey {
		if err := s.kv.Set(kv.KeyAPIKey, cfg.APIKey); err != nil {
			return errors.StorageFailed("write", err)
		}
	}
	if err := s.kv.Set(kv.KeyConfig, record); err != nil {
		return errors.StorageFailed("write", err)
	}
	s.current = cfg
	return nil
}
