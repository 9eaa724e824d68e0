// Package localstore is the client's durable key/value state: auth token,
// user record, cart contents, theme preference and the pending-order marker.
// Each key is read/written independently; absent or corrupt data degrades to
// the zero value instead of erroring.
package localstore

import (
	"os"
	"path/filepath"
	"sync"

	"lashup-client/pkg/logger"

	"github.com/goccy/go-json"
)

// Storage keys. Constant identifiers, one concern per key.
const (
	KeyToken        = "lashup_token"
	KeyUser         = "lashup_user"
	KeyCart         = "lashup_cart"
	KeyTheme        = "lashup_theme"
	KeyPendingOrder = "lashup_pending_order"
)

type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// Open loads the state file at path. A missing or unparsable file yields an
// empty store; Open never fails.
func Open(path string) *Store {
	s := &Store{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("State file unreadable, starting empty")
		}
		return s
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("State file corrupt, starting empty")
		s.data = make(map[string]json.RawMessage)
	}
	return s
}

// Get decodes the value under key into out. Returns false when the key is
// absent or the stored value does not decode into out.
func (s *Store) Get(key string, out any) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Stored value corrupt, ignoring")
		return false
	}
	return true
}

// Set stores v under key and flushes to disk synchronously.
func (s *Store) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to encode state value")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	s.flushLocked()
}

// Delete removes key and flushes to disk synchronously.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return
	}
	delete(s.data, key)
	s.flushLocked()
}

// flushLocked writes the whole map via temp-file rename. Failures are logged,
// never fatal: the in-memory state stays authoritative for this run.
func (s *Store) flushLocked() {
	raw, err := json.Marshal(s.data)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode state file")
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error().Err(err).Str("dir", dir).Msg("Failed to create state dir")
			return
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		logger.Error().Err(err).Str("path", tmp).Msg("Failed to write state file")
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		logger.Error().Err(err).Str("path", s.path).Msg("Failed to replace state file")
	}
}
