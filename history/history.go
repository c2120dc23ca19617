// Package history tracks recently looked-up words.
package history

import (
	"fmt"
	"strings"
	"sync"

	"worddeck/kvstore"
)

// Slot is the key-value slot holding recent lookups, most recent first.
const Slot = "history_v1"

// MaxWords caps how many recent lookups are kept.
const MaxWords = 50

// Store keeps the recent-lookup list mirrored to storage.
type Store struct {
	mu    sync.RWMutex
	kv    *kvstore.Store
	words []string
}

// Load reads the lookup history.
func Load(kv *kvstore.Store) (*Store, error) {
	words, err := kv.GetList(Slot)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return &Store{kv: kv, words: words}, nil
}

// Add records a lookup, moving repeats to the front and trimming the list
// to MaxWords.
func (s *Store) Add(word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(word)
	kept := make([]string, 0, len(s.words)+1)
	kept = append(kept, word)
	for _, w := range s.words {
		if strings.ToLower(w) != key {
			kept = append(kept, w)
		}
	}
	if len(kept) > MaxWords {
		kept = kept[:MaxWords]
	}
	s.words = kept

	if err := s.kv.SetList(Slot, s.words); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// Words returns the recent lookups, most recent first.
func (s *Store) Words() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.words...)
}

// Len returns the number of recorded lookups.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
