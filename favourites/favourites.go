// Package favourites provides persistent favourite-word storage.
package favourites

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"worddeck/dict"
	"worddeck/kvstore"
)

// Slot is the key-value slot holding the favourites list. Each element is
// an independently JSON-encoded entry.
const Slot = "favorites_v1"

// Store manages the favourites collection, keyed by lowercased word. The
// in-memory map is the source of truth; every mutation rewrites the whole
// slot.
type Store struct {
	mu      sync.RWMutex
	kv      *kvstore.Store
	entries map[string]dict.Entry

	updates chan struct{}
}

// Load reads favourites from the store. Strings that fail to parse as a
// JSON object are skipped; the rest of the list still loads.
func Load(kv *kvstore.Store) (*Store, error) {
	raw, err := kv.GetList(Slot)
	if err != nil {
		return nil, fmt.Errorf("loading favourites: %w", err)
	}

	entries := make(map[string]dict.Entry)
	for _, s := range raw {
		entry, err := dict.DecodeEntryJSON([]byte(s))
		if err != nil {
			continue // corrupt entry, tolerate silently
		}
		entries[entry.Key()] = entry
	}

	return &Store{
		kv:      kv,
		entries: entries,
		updates: make(chan struct{}, 1),
	}, nil
}

// Updates is the notification channel: it receives a signal after every
// mutation.
func (s *Store) Updates() <-chan struct{} {
	return s.updates
}

func (s *Store) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// IsFavourite reports whether a word is saved, matching case-insensitively.
func (s *Store) IsFavourite(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[strings.ToLower(word)]
	return ok
}

// Toggle adds the entry if its word is not a favourite, or removes it if it
// is. Returns whether the entry ended up saved.
func (s *Store) Toggle(entry dict.Entry) (bool, error) {
	s.mu.Lock()
	key := entry.Key()
	_, exists := s.entries[key]
	if exists {
		delete(s.entries, key)
	} else {
		s.entries[key] = entry
	}
	err := s.saveLocked()
	s.mu.Unlock()

	if err != nil {
		return !exists, err
	}
	s.notify()
	return !exists, nil
}

// Remove deletes a favourite by word. Returns false if it wasn't saved.
func (s *Store) Remove(word string) (bool, error) {
	s.mu.Lock()
	key := strings.ToLower(word)
	if _, ok := s.entries[key]; !ok {
		s.mu.Unlock()
		return false, nil
	}
	delete(s.entries, key)
	err := s.saveLocked()
	s.mu.Unlock()

	if err != nil {
		return true, err
	}
	s.notify()
	return true, nil
}

// Sorted returns the favourites ordered case-insensitively by word.
func (s *Store) Sorted() []dict.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]dict.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Word) < strings.ToLower(entries[j].Word)
	})
	return entries
}

// Len returns the number of favourites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// saveLocked serializes every entry independently and overwrites the slot.
func (s *Store) saveLocked() error {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		data, err := s.entries[k].EncodeJSON()
		if err != nil {
			return fmt.Errorf("serializing favourite %s: %w", k, err)
		}
		values = append(values, string(data))
	}

	if err := s.kv.SetList(Slot, values); err != nil {
		return fmt.Errorf("saving favourites: %w", err)
	}
	return nil
}
